package source

import (
	"context"
	_ "embed"

	"github.com/emiliopalmerini/timedash/internal/domain"
)

//go:embed data.json
var sampleData []byte

// Embedded serves the sample dataset bundled with the binary.
type Embedded struct{}

func NewEmbedded() *Embedded {
	return &Embedded{}
}

func (e *Embedded) Fetch(ctx context.Context) (domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return domain.ParseDataset(sampleData)
}

func (e *Embedded) Name() string { return "embedded" }

// SampleJSON returns the raw bundled dataset.
func SampleJSON() []byte {
	out := make([]byte, len(sampleData))
	copy(out, sampleData)
	return out
}
