package rename

import (
	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// ExpandGlobs resolves shell-style patterns (doublestar syntax, including
// "**") into concrete paths. An argument matching no files is kept verbatim
// so the caller reports it as an individual missing file rather than
// silently dropping it.
func ExpandGlobs(patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, errors.Errorf("expanding glob %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			paths = append(paths, pattern)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}
