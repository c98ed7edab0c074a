package domain

import (
	"sort"

	"github.com/samber/lo"
)

// ConvertedRecord is an AssetRecord with home-currency valuations attached.
type ConvertedRecord struct {
	AssetRecord
	EvalAmountHome float64 `json:"eval_amount_home"`
	PrincipalHome  float64 `json:"principal_home"`
	ProfitLossHome float64 `json:"profit_loss_home"`
}

// Summary holds portfolio-wide totals in home currency.
type Summary struct {
	TotalEval       float64 `json:"total_eval"`
	TotalPrincipal  float64 `json:"total_principal"`
	TotalProfitLoss float64 `json:"total_profit_loss"`
	ReturnRate      float64 `json:"return_rate"`
	TotalCash       float64 `json:"total_cash"`
}

// AccountTotal is the home-currency evaluation of one account label.
type AccountTotal struct {
	Label string  `json:"label"`
	Eval  float64 `json:"eval"`
}

// Summarize computes portfolio totals. Total profit is derived from
// evaluation minus principal so that cash (zero-profit) records cannot
// skew the return rate.
func Summarize(records []ConvertedRecord) Summary {
	totalEval := lo.SumBy(records, func(r ConvertedRecord) float64 { return r.EvalAmountHome })
	totalPrincipal := lo.SumBy(records, func(r ConvertedRecord) float64 { return r.PrincipalHome })
	totalCash := lo.SumBy(records, func(r ConvertedRecord) float64 {
		if r.AssetType == AssetTypeCash {
			return r.EvalAmountHome
		}
		return 0
	})

	totalPL := totalEval - totalPrincipal
	var returnRate float64
	if totalPrincipal != 0 {
		returnRate = totalPL / totalPrincipal * 100
	}

	return Summary{
		TotalEval:       totalEval,
		TotalPrincipal:  totalPrincipal,
		TotalProfitLoss: totalPL,
		ReturnRate:      returnRate,
		TotalCash:       totalCash,
	}
}

// GroupByAccount sums home-currency evaluation per account label,
// sorted by label for stable output.
func GroupByAccount(records []ConvertedRecord) []AccountTotal {
	groups := lo.GroupBy(records, func(r ConvertedRecord) string { return r.AccountLabel })

	totals := make([]AccountTotal, 0, len(groups))
	for label, recs := range groups {
		totals = append(totals, AccountTotal{
			Label: label,
			Eval:  lo.SumBy(recs, func(r ConvertedRecord) float64 { return r.EvalAmountHome }),
		})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Label < totals[j].Label })
	return totals
}
