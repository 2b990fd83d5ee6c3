package blessings

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/XingWo/skyblessings-go/internal/domain"
)

//go:embed data/*.json
var tableFS embed.FS

const tableFile = "data/blessings.json"

// EmbeddedStore serves the blessing table from an embedded JSON file.
// The table is parsed and validated once; after that it is read-only.
type EmbeddedStore struct {
	once  sync.Once
	table domain.Table
	err   error
}

func NewEmbeddedStore() *EmbeddedStore {
	return &EmbeddedStore{}
}

func (s *EmbeddedStore) init() {
	raw, err := tableFS.ReadFile(tableFile)
	if err != nil {
		s.err = fmt.Errorf("read embedded table: %w", err)
		return
	}
	var records []domain.BlessingRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		s.err = fmt.Errorf("parse embedded table: %w", err)
		return
	}
	table := domain.Table{Records: records}
	if err := table.Validate(); err != nil {
		s.err = fmt.Errorf("validate embedded table: %w", err)
		return
	}
	s.table = table
}

func (s *EmbeddedStore) Table(_ context.Context) (domain.Table, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return domain.Table{}, s.err
	}
	return s.table, nil
}
