package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// GetPathInfo returns the absolute path of relPath and its directory.
func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}
	return fullPath, filepath.Dir(fullPath), nil
}

// Stem is the path without its extension.
func Stem(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// SaveFile works out where the converted program of input goes.
//
// An empty output keeps the input name with ext. A relative output is taken
// from the input directory and one ending in a separator names a directory
// that receives the input name. Missing extensions become ext.
func SaveFile(input, output, ext string) string {
	dir := filepath.Dir(input)
	stem := filepath.Base(Stem(input))

	switch {
	case output == "":
		return filepath.Join(dir, stem+ext)
	case strings.HasSuffix(output, "/") || strings.HasSuffix(output, string(os.PathSeparator)):
		if !filepath.IsAbs(output) {
			output = filepath.Join(dir, output)
		}
		return filepath.Join(output, stem+ext)
	}

	if !filepath.IsAbs(output) {
		output = filepath.Join(dir, output)
	}
	if filepath.Ext(output) == "" {
		output += ext
	}
	return output
}
