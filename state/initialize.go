package state

import (
	"time"

	"tailgen/common"
)

// defaultInput is used when build has no input stylesheet.
const defaultInput = `@tailwind base;
@tailwind components;
@tailwind utilities;
`

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:        time.Now(),
		Format:       common.ResolveFormatYaml,
		DefaultInput: []byte(defaultInput),
	}
}
