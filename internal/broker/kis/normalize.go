package kis

import (
	"github.com/samber/lo"

	"github.com/musaihq/holdings/internal/domain"
)

// ParseDomestic converts a KIS domestic balance payload into standard asset
// records. Zero-quantity holdings and non-positive cash are dropped.
func ParseDomestic(resp *domesticResponse, acct domain.AccountContext) []domain.AssetRecord {
	payload := resp.payload()

	records := lo.FilterMap(payload.Output1, func(h domesticHolding, _ int) (domain.AssetRecord, bool) {
		qty := h.HldgQty.Int(0)
		if qty <= 0 {
			return domain.AssetRecord{}, false
		}
		return domain.AssetRecord{
			Broker:       acct.Broker.Display(),
			AccountType:  acct.AccountType,
			AccountLabel: acct.Label,
			Market:       domain.MarketDomestic,
			AssetType:    domain.AssetTypeStock,
			Ticker:       h.Pdno,
			Name:         h.PrdtName,
			Quantity:     qty,
			AvgBuyPrice:  h.PchsAvgPric.Float(0),
			CurrentPrice: h.Prpr.Float(0),
			EvalAmount:   h.EvluAmt.Float(0),
			ProfitLoss:   h.EvluPflsAmt.Float(0),
			ProfitRate:   h.EvluPflsRt.Float(0),
			Currency:     "KRW",
		}, true
	})

	// Deposit rides along in output2[0].
	if len(payload.Output2) > 0 {
		if cash := payload.Output2[0].NxdyExccAmt.Float(0); cash > 0 {
			records = append(records, domain.NewCashRecord(acct, domain.MarketDomestic, "KRW", "원화 예수금", cash))
		}
	}

	return records
}

// ParseOverseas converts a KIS overseas present-balance payload into
// standard asset records, one per holding plus one per positive
// foreign-currency deposit.
func ParseOverseas(resp *overseasResponse, acct domain.AccountContext) []domain.AssetRecord {
	records := lo.FilterMap(resp.Output1, func(h overseasHolding, _ int) (domain.AssetRecord, bool) {
		qty := h.CcldQtySmtl1.Int(0)
		if qty <= 0 {
			return domain.AssetRecord{}, false
		}

		currency := h.BuyCrcyCd
		if currency == "" {
			currency = "USD"
		}

		// avg_unpr3 is the effective average price; pchs_avg_pric is the
		// fallback when the broker omits it.
		avgBuyPrice := h.AvgUnpr3.Float(0)
		if avgBuyPrice == 0 {
			avgBuyPrice = h.PchsAvgPric.Float(0)
		}

		return domain.AssetRecord{
			Broker:       acct.Broker.Display(),
			AccountType:  acct.AccountType,
			AccountLabel: acct.Label,
			Market:       domain.MarketOverseas,
			AssetType:    domain.AssetTypeStock,
			Ticker:       h.Pdno,
			Name:         h.PrdtName,
			Quantity:     qty,
			AvgBuyPrice:  avgBuyPrice,
			CurrentPrice: h.OvrsNowPric1.Float(0),
			EvalAmount:   h.FrcrEvluAmt2.Float(0),
			ProfitLoss:   h.EvluPflsAmt2.Float(0),
			ProfitRate:   h.EvluPflsRt1.Float(0),
			Currency:     currency,
		}, true
	})

	for _, cash := range resp.Output2 {
		amt := cash.FrcrDnclAmt2.Float(0)
		if amt <= 0 {
			continue
		}
		ccy := cash.CrcyCd
		if ccy == "" {
			ccy = "USD"
		}
		records = append(records, domain.NewCashRecord(acct, domain.MarketOverseas, ccy, ccy+" 예수금", amt))
	}

	return records
}
