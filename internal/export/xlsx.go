package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

var holdingsHeader = []any{
	"증권사", "계좌", "시장", "유형", "티커", "종목명",
	"수량", "평단가", "현재가", "평가금액", "평가손익", "수익률(%)", "통화",
	"평가금액(KRW)", "원금(KRW)", "손익(KRW)",
}

// WriteXLSX writes the snapshot as a two-sheet workbook: one row per
// record plus a totals sheet.
func WriteXLSX(path string, snap Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	const holdingsSheet = "Holdings"
	if err := f.SetSheetName("Sheet1", holdingsSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	if err := f.SetSheetRow(holdingsSheet, "A1", &holdingsHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range snap.Records {
		row := []any{
			r.Broker, r.AccountLabel, string(r.Market), string(r.AssetType), r.Ticker, r.Name,
			r.Quantity, r.AvgBuyPrice, r.CurrentPrice, r.EvalAmount, r.ProfitLoss, r.ProfitRate, r.Currency,
			r.EvalAmountHome, r.PrincipalHome, r.ProfitLossHome,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("computing cell: %w", err)
		}
		if err := f.SetSheetRow(holdingsSheet, cell, &row); err != nil {
			return fmt.Errorf("writing record row: %w", err)
		}
	}

	const summarySheet = "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	summaryRows := [][]any{
		{"생성 시각", snap.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"총 평가금액", snap.Summary.TotalEval},
		{"총 원금", snap.Summary.TotalPrincipal},
		{"총 평가손익", snap.Summary.TotalProfitLoss},
		{"수익률(%)", snap.Summary.ReturnRate},
		{"총 예수금", snap.Summary.TotalCash},
	}
	for _, acct := range snap.Accounts {
		summaryRows = append(summaryRows, []any{acct.Label, acct.Eval})
	}
	for i := range summaryRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("computing cell: %w", err)
		}
		if err := f.SetSheetRow(summarySheet, cell, &summaryRows[i]); err != nil {
			return fmt.Errorf("writing summary row: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
