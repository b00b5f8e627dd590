package engine

import (
	"errors"
	"os"

	"github.com/pmezard/go-difflib/difflib"
)

// Change is the immutable outcome of transforming one file: the file
// identity plus the source before and after.
type Change struct {
	File        *FileInfo
	Original    string
	Transformed string
}

// Diff renders the change as a unified diff.
func (c *Change) Diff() (string, error) {
	if c.File == nil {
		return "", errors.New("change is not bound to a file")
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(c.Original),
		B:        difflib.SplitLines(c.Transformed),
		FromFile: c.File.Path,
		ToFile:   c.File.Path,
		Context:  3,
	})
}

// Write puts the transformed source back on disk, restoring the byte
// order mark when the original carried one.
func (c *Change) Write() error {
	if c.File == nil {
		return errors.New("change is not bound to a file")
	}
	data := []byte(c.Transformed)
	if c.File.BOM {
		data = append(append([]byte{}, utf8BOM...), data...)
	}
	return os.WriteFile(c.File.Path, data, 0o644)
}
