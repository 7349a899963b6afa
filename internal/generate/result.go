package generate

// Result aggregates one generation run: the files written and the errors
// collected along the way. A run with a non-empty error list is not
// successful, but single-item failures never abort sibling items.
type Result struct {
	Success        bool
	FilesGenerated []string
	Errors         []string
}

func newResult(files, errs []string) Result {
	return Result{
		Success:        len(errs) == 0,
		FilesGenerated: files,
		Errors:         errs,
	}
}
