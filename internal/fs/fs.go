// Package fs abstracts the backing store that templates are loaded from.
// Implementations exist for the local filesystem and for read-only GitHub
// repositories addressed by github:// URLs.
package fs

// FileSystem is the read contract the template store consumes. Paths are
// slash-separated and relative to the filesystem root.
type FileSystem interface {
	// Exists reports whether the path refers to an existing file or directory.
	Exists(path string) bool

	// ReadFile returns the contents of the file at path.
	ReadFile(path string) (string, error)

	// ListFiles returns the relative paths of files directly inside dir whose
	// base name matches the glob pattern, sorted lexically. A missing
	// directory yields an empty slice, not an error.
	ListFiles(dir, pattern string) ([]string, error)
}
