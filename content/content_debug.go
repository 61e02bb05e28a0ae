package content

import (
	"tailgen/utils/debug"
)

// String returns readable dump of scan results. It is stored in debug report.
func (r *Result) String() string {
	if r == nil {
		return "<nil Result>"
	}
	tw := debug.NewTreeWriter()

	tw.Line(0, "Files: %d", len(r.Files))
	for _, st := range r.Files {
		switch {
		case st.Err != nil:
			tw.Line(1, "%s error[%v]", st.Path, st.Err)
		case st.Binary:
			tw.Line(1, "%s size[%d] binary", st.Path, st.Size)
		default:
			tw.Line(1, "%s size[%d] candidates[%d]", st.Path, st.Size, st.Candidates)
		}
	}
	tw.Items(0, "Candidates", r.Candidates())
	return tw.String()
}
