package kiwoom

import (
	"log/slog"

	"github.com/samber/lo"

	"github.com/musaihq/holdings/internal/domain"
)

// ParseDomestic converts a Kiwoom daily-balance payload into standard asset
// records. A non-zero (or missing) return_code means the broker rejected
// the query: the failure is logged and an empty list returned, never an
// error, so one bad account cannot abort a collection run.
func ParseDomestic(resp *balanceResponse, acct domain.AccountContext) []domain.AssetRecord {
	if !resp.ok() {
		slog.Error("kiwoom balance query failed", "returnMsg", resp.ReturnMsg)
		return nil
	}

	records := lo.FilterMap(resp.DayBalRt, func(h dayBalance, _ int) (domain.AssetRecord, bool) {
		qty := h.RmndQty.Int(0)
		if qty <= 0 {
			return domain.AssetRecord{}, false
		}

		name := h.StkNm
		if name == "" {
			name = h.StkCd
		}
		if name == "" {
			name = "알 수 없음"
		}

		return domain.AssetRecord{
			Broker:       acct.Broker.Display(),
			AccountType:  acct.AccountType,
			AccountLabel: acct.Label,
			Market:       domain.MarketDomestic,
			AssetType:    domain.AssetTypeStock,
			Ticker:       h.StkCd,
			Name:         name,
			Quantity:     qty,
			AvgBuyPrice:  h.BuyUv.Float(0),
			CurrentPrice: h.CurPrc.Float(0),
			EvalAmount:   h.EvltAmt.Float(0),
			ProfitLoss:   h.EvltvPrft.Float(0),
			ProfitRate:   h.PrftRt.Float(0),
			Currency:     "KRW",
		}, true
	})

	if cash := resp.DbstBal.Float(0); cash > 0 {
		records = append(records, domain.NewCashRecord(acct, domain.MarketDomestic, "KRW", "원화 예수금", cash))
	}

	return records
}
