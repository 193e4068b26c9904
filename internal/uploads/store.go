// Package uploads persists uploaded files before they are processed.
package uploads

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

var ErrInvalidName = errors.New("invalid file name")

// Store saves r under name and returns where it ended up. Saving the same
// name twice overwrites the earlier file.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}

// CleanName strips any directory part so uploads cannot escape the store root.
func CleanName(name string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == ".." || strings.TrimSpace(base) == "" {
		return "", ErrInvalidName
	}
	return base, nil
}
