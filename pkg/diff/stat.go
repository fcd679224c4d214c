package diff

import (
	"fmt"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"
)

// Stat counts added and removed lines of a unified diff. An empty diff has
// no changes.
func Stat(unified string) (added, removed int, err error) {
	if strings.TrimSpace(unified) == "" {
		return 0, 0, nil
	}

	fileDiffs, err := godiff.NewMultiFileDiffReader(strings.NewReader(unified + "\n")).ReadAllFiles()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse unified diff: %w", err)
	}

	for _, fd := range fileDiffs {
		for _, hunk := range fd.Hunks {
			for _, line := range strings.Split(string(hunk.Body), "\n") {
				switch {
				case strings.HasPrefix(line, "+"):
					added++
				case strings.HasPrefix(line, "-"):
					removed++
				}
			}
		}
	}
	return added, removed, nil
}
