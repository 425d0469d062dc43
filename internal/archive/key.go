package archive

import (
	"path"
	"strings"
)

// Key is a normalized slide filename used to match manifest entries against
// package contents.
type Key string

// KeyOf folds case, converts backslashes, cleans the path and drops any
// leading "./", "/" or "slides/" prefix.
func KeyOf(name string) Key {
	s := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	if s == "" {
		return ""
	}
	s = strings.TrimPrefix(path.Clean(s), "/")
	s = strings.TrimPrefix(s, slidesDir)
	if s == "." {
		return ""
	}
	return Key(s)
}
