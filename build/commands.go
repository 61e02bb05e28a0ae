package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"tailgen/common"
	"tailgen/content"
	"tailgen/project"
	"tailgen/state"
)

// BuildFlags returns flags shared by build and watch commands.
func BuildFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "input stylesheet `FILE` with @tailwind directives"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write generated stylesheet to `FILE` instead of STDOUT"},
		&cli.BoolFlag{Name: "minify", Aliases: []string{"m"}, Usage: "produce minified stylesheet"},
	}
}

// ResolveFlags returns flags of resolve command.
func ResolveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: common.ResolveFormatYaml.String(),
			Usage: "output `TYPE` (supported types: " + strings.Join(common.ResolveFormatNames(), ", ") + ")"},
	}
}

// stylePath gets style configuration path from the first argument.
func stylePath(cmd *cli.Command, log *zap.Logger) (string, error) {
	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return "", errors.New("no style configuration has been specified")
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	return filepath.Abs(src)
}

// setOutput copies build flags into environment.
func setOutput(env *state.LocalEnv, cmd *cli.Command) {
	env.InputPath = cmd.String("input")
	env.OutputPath = cmd.String("output")
	env.Minify = cmd.Bool("minify")
}

// RunBuild is "build" command action.
func RunBuild(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)

	src, err := stylePath(cmd, env.Log)
	if err != nil {
		return err
	}
	setOutput(env, cmd)

	_, err = Run(ctx, env, src)
	return err
}

// RunWatch is "watch" command action.
func RunWatch(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)

	src, err := stylePath(cmd, env.Log)
	if err != nil {
		return err
	}
	setOutput(env, cmd)

	return Watch(ctx, env, src)
}

// RunResolve is "resolve" command action, it prints resolved style
// configuration.
func RunResolve(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("resolve")

	src, err := stylePath(cmd, log)
	if err != nil {
		return err
	}

	format, err := common.ParseResolveFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("unable to use requested format: %w", err)
	}
	env.Format = format

	cfg, err := project.Load(src)
	if err != nil {
		return err
	}
	data, err := cfg.Resolve().Marshal(env.Format)
	if err != nil {
		return err
	}
	env.Rpt.StoreData("resolved."+env.Format.String(), data)

	log.Debug("Style configuration resolved", zap.String("source", src), zap.Stringer("format", env.Format))
	if _, err := writer(cmd).Write(data); err != nil {
		return fmt.Errorf("unable to write resolved configuration: %w", err)
	}
	return nil
}

// RunScan is "scan" command action, it prints candidates found in content
// files, one per line.
func RunScan(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("scan")

	src, err := stylePath(cmd, log)
	if err != nil {
		return err
	}
	cfg, err := project.Load(src)
	if err != nil {
		return err
	}
	patterns, duplicates := cfg.Patterns()
	for _, d := range duplicates {
		log.Warn("Duplicate content pattern ignored", zap.String("pattern", d))
	}

	res, err := content.NewScanner(cfg.Dir, patterns, env.Cfg.Build.Workers, env.Log).Scan(ctx)
	if err != nil {
		return err
	}
	for _, st := range res.Files {
		log.Debug("Content file", zap.String("file", st.Path), zap.Int("size", st.Size), zap.Int("candidates", st.Candidates), zap.Bool("binary", st.Binary))
	}
	log.Info("Content scanned", zap.Int("files", len(res.Files)), zap.Int("candidates", res.Len()))

	w := writer(cmd)
	for _, c := range res.Candidates() {
		if _, err := fmt.Fprintln(w, c); err != nil {
			return fmt.Errorf("unable to write candidates: %w", err)
		}
	}
	return nil
}

func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
