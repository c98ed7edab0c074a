package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/musaihq/holdings/internal/collector"
	"github.com/musaihq/holdings/internal/domain"
)

// Snapshot is the full output of one aggregation run: converted records,
// portfolio totals, and everything that went wrong along the way.
type Snapshot struct {
	GeneratedAt  time.Time                `json:"generated_at"`
	BaseCurrency string                   `json:"base_currency"`
	Records      []domain.ConvertedRecord `json:"records"`
	Summary      domain.Summary           `json:"summary"`
	Accounts     []domain.AccountTotal    `json:"accounts"`
	Failures     []collector.Failure      `json:"failures,omitempty"`
	Warnings     []string                 `json:"warnings,omitempty"`
}

// BuildSnapshot assembles a snapshot from a collection result and its
// converted records.
func BuildSnapshot(result collector.Result, converted []domain.ConvertedRecord, warnings []string, base string) Snapshot {
	return Snapshot{
		GeneratedAt:  result.CollectedAt,
		BaseCurrency: base,
		Records:      converted,
		Summary:      domain.Summarize(converted),
		Accounts:     domain.GroupByAccount(converted),
		Failures:     result.Failures,
		Warnings:     warnings,
	}
}

// WriteJSON writes the snapshot as indented JSON, replacing any previous
// file at the path.
func WriteJSON(path string, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot file: %w", err)
	}
	return nil
}
