package export

import (
	"context"
	"fmt"
)

// FileExporter writes each snapshot to local files. Empty paths disable
// the corresponding format.
type FileExporter struct {
	JSONPath string
	XLSXPath string
}

// Export implements worker.AfterRefreshHook.
func (e FileExporter) Export(_ context.Context, snap Snapshot) error {
	if e.JSONPath != "" {
		if err := WriteJSON(e.JSONPath, snap); err != nil {
			return fmt.Errorf("exporting JSON: %w", err)
		}
	}
	if e.XLSXPath != "" {
		if err := WriteXLSX(e.XLSXPath, snap); err != nil {
			return fmt.Errorf("exporting XLSX: %w", err)
		}
	}
	return nil
}

// Export rewrites the live sheets and appends one history row.
// Implements worker.AfterRefreshHook.
func (w *SheetsWriter) Export(ctx context.Context, snap Snapshot) error {
	if err := w.Write(ctx, snap); err != nil {
		return err
	}
	return w.AppendHistory(ctx, snap)
}
