package server

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var (
	errTraversal = errors.New("path escapes content root")
	errNotFound  = errors.New("no such file")
)

// resolvePath maps a request path to a filesystem path under root. The
// bare "/" maps to the default document. Any parent-directory segment is
// rejected before the filesystem is touched.
func resolvePath(root, defaultDoc, requestPath string) (string, error) {
	if requestPath == "/" {
		requestPath = "/" + defaultDoc
	}
	for _, seg := range strings.Split(requestPath, "/") {
		if seg == ".." {
			return "", errTraversal
		}
	}
	return filepath.Join(root, filepath.FromSlash(path.Clean(requestPath))), nil
}

// loadFile stats and reads an entire regular file. A missing path or a
// non-regular file yields errNotFound; a failed read is an I/O error.
func loadFile(fullPath string) ([]byte, error) {
	info, err := os.Stat(fullPath)
	if err != nil || !info.Mode().IsRegular() {
		return nil, errNotFound
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fullPath, err)
	}
	return data, nil
}
