package ratefx

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/musaihq/holdings/internal/domain"
)

// Convert attaches home-currency valuations to every record. Table rates
// are foreign units per one home unit, so conversion divides by the rate.
// A currency missing from the table converts with factor 1 and produces a
// warning; records are never dropped.
func Convert(records []domain.AssetRecord, table Table) ([]domain.ConvertedRecord, []string) {
	var warnings []string
	if table.Fallback {
		warnings = append(warnings, "live exchange rates unavailable, static fallback table in use")
	}

	missing := make(map[string]bool)
	converted := make([]domain.ConvertedRecord, 0, len(records))

	for _, r := range records {
		rate, ok := table.Rate(r.Currency)
		if !ok || rate == 0 {
			if !missing[r.Currency] {
				missing[r.Currency] = true
				warnings = append(warnings, fmt.Sprintf("no exchange rate for %s, amounts kept as-is", r.Currency))
				slog.Warn("missing exchange rate", "currency", r.Currency, "base", table.Base)
			}
			rate = 1
		}

		converted = append(converted, convertRecord(r, rate))
	}

	return converted, warnings
}

func convertRecord(r domain.AssetRecord, rate float64) domain.ConvertedRecord {
	d := decimal.NewFromFloat(rate)

	evalHome := toHome(r.EvalAmount, d)
	plHome := toHome(r.ProfitLoss, d)

	var principalHome float64
	switch {
	case r.AssetType == domain.AssetTypeCash:
		principalHome = evalHome
	case r.AvgBuyPrice > 0:
		principalHome = round2(decimal.NewFromFloat(r.AvgBuyPrice).
			Mul(decimal.NewFromInt(r.Quantity)).
			Div(d))
	default:
		// No purchase price on record; back the principal out of the
		// converted figures.
		principalHome = round2(decimal.NewFromFloat(evalHome).Sub(decimal.NewFromFloat(plHome)))
	}

	return domain.ConvertedRecord{
		AssetRecord:    r,
		EvalAmountHome: evalHome,
		PrincipalHome:  principalHome,
		ProfitLossHome: plHome,
	}
}

func toHome(amount float64, rate decimal.Decimal) float64 {
	return round2(decimal.NewFromFloat(amount).Div(rate))
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
