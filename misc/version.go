// Package misc keeps build time information.
package misc

import (
	"os"
	"path/filepath"
	"strings"
)

// set by linker
var (
	version = "dev"
	githash = "unknown"
	appname = ""
)

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return githash
}

// GetAppName returns program name without extension, linker value wins if set.
func GetAppName() string {
	if len(appname) > 0 {
		return appname
	}
	return strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))
}
