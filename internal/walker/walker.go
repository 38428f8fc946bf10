// Package walker lists the source files of a project.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Walk returns every regular file below root whose extension is ext
// (".rs"), sorted by path. The first traversal error aborts the walk.
func Walk(root, ext string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("source root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source root %s: %w", root, ErrNotDir)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if filepath.Ext(path) == ext {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}
