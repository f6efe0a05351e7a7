package config

import (
	"os"
	"path/filepath"
)

// ProjectConfigName is the per-project config file looked up from the
// working directory upwards.
const ProjectConfigName = ".checktree.yaml"

// DetectProjectConfig attempts to find the nearest project config by walking
// up from the current directory.
func DetectProjectConfig() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	return findProjectConfig(dir)
}

// findProjectConfig walks up from dir looking for .checktree.yaml.
func findProjectConfig(dir string) (string, bool) {
	home, _ := os.UserHomeDir()

	for {
		candidate := filepath.Join(dir, ProjectConfigName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		// Don't go above home directory
		if home != "" && dir == home {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached filesystem root
		}
		dir = parent
	}
	return "", false
}
