package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// expandTilde expands ~ to the user's home directory. The path is returned
// unchanged when the home directory cannot be determined.
func expandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// outputPath joins name onto dir unless name is already absolute.
func outputPath(dir, name string) string {
	name = expandTilde(name)
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(expandTilde(dir), name)
}

// castName is the file name of the streaming artifact of block index.
func castName(prefix string, index int) string {
	return prefix + strconv.Itoa(index) + ".cast"
}

// legacyName is the file name of the legacy artifact of block index.
func legacyName(prefix string, index int) string {
	return prefix + strconv.Itoa(index) + ".json"
}
