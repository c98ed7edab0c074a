package export

import (
	"context"
	"fmt"
	"time"

	sheets "google.golang.org/api/sheets/v4"
)

var historyHeader = []any{
	"날짜", "총 평가금액", "총 원금", "총 평가손익", "수익률(%)", "총 예수금", "수집 실패",
}

// buildHistoryRow builds one HISTORY data row for the current run.
func buildHistoryRow(snap Snapshot, at time.Time) []any {
	return []any{
		at.Format("2006-01-02 15:04"),
		snap.Summary.TotalEval,
		snap.Summary.TotalPrincipal,
		snap.Summary.TotalProfitLoss,
		snap.Summary.ReturnRate,
		snap.Summary.TotalCash,
		len(snap.Failures),
	}
}

// AppendHistory ensures the HISTORY sheet exists, writes the header row if
// the sheet is empty, then appends one data row for the current run. Unlike
// HOLDINGS and SUMMARY the history is never cleared, so the sheet
// accumulates one row per collection.
func (w *SheetsWriter) AppendHistory(ctx context.Context, snap Snapshot) error {
	if err := w.ensureSheets(ctx, "HISTORY"); err != nil {
		return fmt.Errorf("ensuring HISTORY sheet: %w", err)
	}

	existing, err := w.svc.Spreadsheets.Values.Get(
		w.spreadsheetID, "HISTORY!A1:A1",
	).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("reading HISTORY header: %w", err)
	}

	if len(existing.Values) == 0 {
		_, err = w.svc.Spreadsheets.Values.Update(
			w.spreadsheetID,
			"HISTORY!A1",
			&sheets.ValueRange{Values: [][]any{historyHeader}},
		).ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("writing HISTORY header: %w", err)
		}
	}

	_, err = w.svc.Spreadsheets.Values.Append(
		w.spreadsheetID,
		"HISTORY!A:G",
		&sheets.ValueRange{Values: [][]any{buildHistoryRow(snap, snap.GeneratedAt)}},
	).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("appending HISTORY row: %w", err)
	}

	return nil
}
