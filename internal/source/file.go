package source

import (
	"context"
	"fmt"
	"os"

	"github.com/emiliopalmerini/timedash/internal/domain"
)

// File reads the dataset from a JSON file on disk.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Fetch(ctx context.Context) (domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return domain.ParseDataset(data)
}

func (f *File) Name() string { return "file" }
