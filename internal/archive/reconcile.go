package archive

import (
	"sort"

	"github.com/ziadkadry99/slidepack/internal/model"
)

// candidate is an HTML document found in a package that may become a slide.
type candidate struct {
	key  Key
	sort string // ordinal sort key, the filename as it appears
	stem string // default slide name
	dir  string // directory holding the document, for asset lookup
	html string
}

// placed is a candidate in its final position with its resolved name.
type placed struct {
	candidate
	name string
}

// reconcile orders candidates. Manifest entries come first in manifest order;
// entries with no matching candidate are dropped. Candidates the manifest does
// not reference follow, sorted ordinally. Without a manifest every candidate is
// sorted ordinally. Each candidate is placed at most once.
func reconcile(manifest []model.ManifestEntry, cands []candidate) []placed {
	byKey := make(map[Key]int, len(cands))
	for i, c := range cands {
		if _, dup := byKey[c.key]; !dup {
			byKey[c.key] = i
		}
	}

	out := make([]placed, 0, len(cands))
	used := make([]bool, len(cands))
	for _, entry := range manifest {
		i, ok := byKey[KeyOf(entry.File)]
		if !ok || used[i] {
			continue
		}
		used[i] = true
		name := entry.Title
		if name == "" {
			name = cands[i].stem
		}
		out = append(out, placed{candidate: cands[i], name: name})
	}

	rest := make([]candidate, 0, len(cands))
	for i, c := range cands {
		if !used[i] {
			rest = append(rest, c)
		}
	}
	sort.SliceStable(rest, func(a, b int) bool { return rest[a].sort < rest[b].sort })
	for _, c := range rest {
		out = append(out, placed{candidate: c, name: c.stem})
	}
	return out
}
