package fs

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
)

// Local is a FileSystem rooted at a directory on disk.
type Local struct {
	root string
}

// NewLocal creates a Local filesystem rooted at root.
func NewLocal(root string) *Local {
	return &Local{root: root}
}

// Root returns the root directory this filesystem is bound to.
func (l *Local) Root() string {
	return l.root
}

func (l *Local) abs(p string) string {
	return filepath.Join(l.root, filepath.FromSlash(p))
}

// Exists reports whether the path exists under the root.
func (l *Local) Exists(p string) bool {
	_, err := os.Stat(l.abs(p))
	return err == nil
}

// ReadFile returns the contents of the file at p.
func (l *Local) ReadFile(p string) (string, error) {
	data, err := os.ReadFile(l.abs(p))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", p, err)
	}
	return string(data), nil
}

// ListFiles returns the relative paths of files in dir matching pattern.
func (l *Local) ListFiles(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(l.abs(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := path.Match(pattern, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if ok {
			matches = append(matches, path.Join(dir, entry.Name()))
		}
	}
	sort.Strings(matches)
	return matches, nil
}
