package main

import (
	"os"
	"path/filepath"
)

// configFileName is looked up from the working directory upwards when no
// --config flag is given.
const configFileName = "l10n-audit.yaml"

// findConfigFile returns the nearest configFileName by walking up from the
// current directory, or "" when there is none.
func findConfigFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
