package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed data/*.json
var catalogFS embed.FS

const embeddedFile = "data/pokemon.json"

// EmbeddedProvider serves the catalog compiled into the binary.
type EmbeddedProvider struct {
	once  sync.Once
	items []string
	err   error
}

func NewEmbeddedProvider() *EmbeddedProvider {
	return &EmbeddedProvider{}
}

func (p *EmbeddedProvider) init() {
	raw, err := catalogFS.ReadFile(embeddedFile)
	if err != nil {
		p.err = fmt.Errorf("read embedded catalog: %w", err)
		return
	}
	if err := json.Unmarshal(raw, &p.items); err != nil {
		p.err = fmt.Errorf("parse embedded catalog: %w", err)
	}
}

func (p *EmbeddedProvider) FetchCatalog(_ context.Context) ([]string, error) {
	p.once.Do(p.init)
	if p.err != nil {
		return nil, p.err
	}
	out := make([]string, len(p.items))
	copy(out, p.items)
	return out, nil
}
