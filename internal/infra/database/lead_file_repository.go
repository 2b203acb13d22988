package database

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xcarvalho/leadtrack/internal/entity"
)

// CorruptStorageError means the document exists but cannot be parsed. The
// process must not write over it; manual inspection wins over silent loss.
type CorruptStorageError struct {
	Path string
	Err  error
}

func (e *CorruptStorageError) Error() string {
	return fmt.Sprintf("lead storage %s is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptStorageError) Unwrap() error {
	return e.Err
}

// leadDocument is the on-disk shape: one JSON object holding the whole
// collection.
type leadDocument struct {
	Leads []*entity.Lead `json:"leads"`
}

// LeadFileRepository persists the lead collection as a single JSON document.
// Single-owner assumption: no cross-process locking is provided.
type LeadFileRepository struct {
	path string
}

func NewLeadFileRepository(path string) *LeadFileRepository {
	return &LeadFileRepository{path: path}
}

// Load reads the whole collection. A missing or empty file is an empty
// collection, not an error.
func (r *LeadFileRepository) Load(ctx context.Context) ([]*entity.Lead, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read lead storage: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var doc leadDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &CorruptStorageError{Path: r.path, Err: err}
	}
	return doc.Leads, nil
}

// Save replaces the document atomically: write a sibling temp file, then
// rename over the target. The temp file is removed on every failure path.
func (r *LeadFileRepository) Save(ctx context.Context, leads []*entity.Lead) error {
	if leads == nil {
		leads = []*entity.Lead{}
	}

	data, err := json.MarshalIndent(leadDocument{Leads: leads}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode lead storage: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create storage directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "leads-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp storage file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write lead storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp storage file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace lead storage: %w", err)
	}
	return nil
}
