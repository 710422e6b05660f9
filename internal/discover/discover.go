package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// IsCueFile reports whether path has a .cue extension, ignoring case.
func IsCueFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".cue")
}

// Find returns the cue sheet files under root in sorted order.
//
// When root is a regular file it is returned as the single result,
// provided it has a .cue extension. When root is a directory it is
// walked recursively, hidden directories included. The result may be
// empty; deciding whether that is an error is left to the caller.
func Find(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("file or directory does not exist: %s", root)
	}

	if !info.IsDir() {
		if !IsCueFile(root) {
			return nil, fmt.Errorf("not a cue sheet: %s", root)
		}
		return []string{root}, nil
	}

	var cues []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsCueFile(d.Name()) {
			cues = append(cues, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sort.Strings(cues)
	return cues, nil
}
