package archive

import (
	"fmt"
	"io/fs"
)

// FormatError reports input that cannot be opened as a package at all.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid package archive: %v", e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ConfigError reports a metadata entry that failed to parse. Readers log it
// and continue as if the entry were absent.
type ConfigError struct {
	Entry string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Entry, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// AssetUnresolvedError reports a slide reference with no matching entry.
type AssetUnresolvedError struct {
	Slide string
	Ref   string
}

func (e *AssetUnresolvedError) Error() string {
	return fmt.Sprintf("slide %q: asset %q not found in package", e.Slide, e.Ref)
}

func (e *AssetUnresolvedError) Unwrap() error { return fs.ErrNotExist }

// ExportError wraps any failure while building an output archive.
type ExportError struct {
	Mode Mode
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("%s export failed: %v", e.Mode, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
