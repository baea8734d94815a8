package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrTemplateParse indicates malformed template syntax.
	ErrTemplateParse = errors.New("table-gen: template parse failed")
	// ErrTemplateRender indicates a template that failed against its context.
	ErrTemplateRender = errors.New("table-gen: template render failed")
	// ErrFileWrite indicates an output file could not be written.
	ErrFileWrite = errors.New("table-gen: file write failed")
	// ErrOutputConflict indicates two renders mapped to the same output file.
	ErrOutputConflict = errors.New("table-gen: output path conflict")
)

// TemplateParseError reports a template that could not be parsed.
type TemplateParseError struct {
	Template string
	Cause    error
}

func (e *TemplateParseError) Error() string {
	return fmt.Sprintf("table-gen: parse template %s: %v", e.Template, e.Cause)
}

func (e *TemplateParseError) Unwrap() error { return e.Cause }

func (e *TemplateParseError) Is(target error) bool { return target == ErrTemplateParse }

// TemplateRenderError reports a failed render. Table is empty for single templates.
type TemplateRenderError struct {
	Template string
	Table    string
	Cause    error
}

func (e *TemplateRenderError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("table-gen: render template %s: %v", e.Template, e.Cause)
	}
	return fmt.Sprintf("table-gen: render template %s for table %s: %v", e.Template, e.Table, e.Cause)
}

func (e *TemplateRenderError) Unwrap() error { return e.Cause }

func (e *TemplateRenderError) Is(target error) bool { return target == ErrTemplateRender }

// FileWriteError reports an I/O failure on an output path.
type FileWriteError struct {
	Path  string
	Op    string // mkdir, create, write, flush or close
	Cause error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("table-gen: %s %s: %v", e.Op, e.Path, e.Cause)
}

func (e *FileWriteError) Unwrap() error { return e.Cause }

func (e *FileWriteError) Is(target error) bool { return target == ErrFileWrite }

// IsTemplateParseError reports whether the error is a TemplateParseError.
func IsTemplateParseError(err error) bool {
	var parseErr *TemplateParseError
	return errors.As(err, &parseErr)
}

// IsTemplateRenderError reports whether the error is a TemplateRenderError.
func IsTemplateRenderError(err error) bool {
	var renderErr *TemplateRenderError
	return errors.As(err, &renderErr)
}

// IsFileWriteError reports whether the error is a FileWriteError.
func IsFileWriteError(err error) bool {
	var writeErr *FileWriteError
	return errors.As(err, &writeErr)
}
