package export

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// SheetsWriter publishes a snapshot to a Google spreadsheet.
type SheetsWriter struct {
	spreadsheetID string
	svc           *sheets.Service
}

// NewSheetsWriter creates a SheetsWriter authenticated with a service account JSON.
func NewSheetsWriter(ctx context.Context, spreadsheetID, credentialsJSON string) (*SheetsWriter, error) {
	creds, err := google.CredentialsFromJSON(
		ctx,
		[]byte(credentialsJSON),
		sheets.SpreadsheetsScope,
	)
	if err != nil {
		return nil, fmt.Errorf("parsing google credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &SheetsWriter{spreadsheetID: spreadsheetID, svc: svc}, nil
}

// Write ensures required sheets exist, then clears and rewrites them.
func (w *SheetsWriter) Write(ctx context.Context, snap Snapshot) error {
	if err := w.ensureSheets(ctx, "HOLDINGS", "SUMMARY"); err != nil {
		return err
	}

	_, err := w.svc.Spreadsheets.Values.BatchClear(
		w.spreadsheetID,
		&sheets.BatchClearValuesRequest{
			Ranges: []string{"HOLDINGS!A:P", "SUMMARY!A:B"},
		},
	).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clearing sheets: %w", err)
	}

	_, err = w.svc.Spreadsheets.Values.BatchUpdate(
		w.spreadsheetID,
		&sheets.BatchUpdateValuesRequest{
			ValueInputOption: "USER_ENTERED",
			Data: []*sheets.ValueRange{
				{Range: "HOLDINGS!A1", Values: buildHoldings(snap)},
				{Range: "SUMMARY!A1", Values: buildSummary(snap)},
			},
		},
	).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("writing sheets: %w", err)
	}

	return nil
}

// buildHoldings builds the HOLDINGS sheet data, one row per record.
func buildHoldings(snap Snapshot) [][]any {
	data := make([][]any, 0, len(snap.Records)+1)
	data = append(data, holdingsHeader)

	for _, r := range snap.Records {
		data = append(data, []any{
			r.Broker, r.AccountLabel, string(r.Market), string(r.AssetType), r.Ticker, r.Name,
			r.Quantity, r.AvgBuyPrice, r.CurrentPrice, r.EvalAmount, r.ProfitLoss, r.ProfitRate, r.Currency,
			r.EvalAmountHome, r.PrincipalHome, r.ProfitLossHome,
		})
	}

	return data
}

// buildSummary builds the SUMMARY sheet data: totals first, then one row
// per account label.
func buildSummary(snap Snapshot) [][]any {
	data := [][]any{
		{"생성 시각", snap.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"총 평가금액", snap.Summary.TotalEval},
		{"총 원금", snap.Summary.TotalPrincipal},
		{"총 평가손익", snap.Summary.TotalProfitLoss},
		{"수익률(%)", snap.Summary.ReturnRate},
		{"총 예수금", snap.Summary.TotalCash},
	}
	for _, acct := range snap.Accounts {
		data = append(data, []any{acct.Label, acct.Eval})
	}
	return data
}

// ensureSheets creates any of the named sheets that do not already exist.
func (w *SheetsWriter) ensureSheets(ctx context.Context, names ...string) error {
	spreadsheet, err := w.svc.Spreadsheets.Get(w.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("getting spreadsheet metadata: %w", err)
	}

	existing := make(map[string]bool, len(spreadsheet.Sheets))
	for _, s := range spreadsheet.Sheets {
		existing[s.Properties.Title] = true
	}

	var requests []*sheets.Request
	for _, name := range names {
		if !existing[name] {
			requests = append(requests, &sheets.Request{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: name},
				},
			})
		}
	}

	if len(requests) == 0 {
		return nil
	}

	_, err = w.svc.Spreadsheets.BatchUpdate(
		w.spreadsheetID,
		&sheets.BatchUpdateSpreadsheetRequest{Requests: requests},
	).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("creating sheets: %w", err)
	}

	return nil
}
