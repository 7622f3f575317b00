package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/mitchellh/mapstructure"

	"github.com/limaJavier/coursetable/pkg/model"
)

type memoryRepository struct {
	records []Record
}

// NewMemoryRepository serves sections from records held in memory, in the given order
func NewMemoryRepository(records []Record) model.SectionRepository {
	return &memoryRepository{records: slices.Clone(records)}
}

func (repository *memoryRepository) FetchSections(ctx context.Context, code, semester, includeFilter string) ([]model.Section, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filter, err := newSectionFilter(code, semester, includeFilter)
	if err != nil {
		return nil, err
	}
	return toSections(repository.records, filter)
}

// RecordsFromJson reads a catalog file holding a JSON array of records
func RecordsFromJson(file string) ([]Record, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var catalogJson []map[string]any
	if err := json.Unmarshal(bytes, &catalogJson); err != nil {
		return nil, err
	}

	var records []Record
	if err := mapstructure.Decode(catalogJson, &records); err != nil {
		return nil, fmt.Errorf("cannot decode catalog: %w", err)
	}
	return records, nil
}
