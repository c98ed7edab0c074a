package kiwoom

import (
	"encoding/json"
	"testing"

	"github.com/musaihq/holdings/internal/domain"
)

var testAcct = domain.AccountContext{
	Broker:      domain.BrokerKiwoom,
	AccountType: domain.AccountTypeCorporate,
	Label:       "키움증권(법인)",
}

func intPtr(n int) *int { return &n }

func TestParseDomesticHoldingsAndCash(t *testing.T) {
	raw := []byte(`{
		"return_code": 0,
		"day_bal_rt": [
			{"stk_cd": "005930", "stk_nm": "삼성전자", "rmnd_qty": "20", "buy_uv": "60000", "cur_prc": "70000", "evlt_amt": "1400000", "evltv_prft": "200000", "prft_rt": "16.67"},
			{"stk_cd": "000660", "stk_nm": "SK하이닉스", "rmnd_qty": "0"}
		],
		"dbst_bal": "350000"
	}`)

	var resp balanceResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records := ParseDomestic(&resp, testAcct)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2 (one stock + cash, zero-qty dropped)", len(records))
	}

	stock := records[0]
	if stock.Ticker != "005930" || stock.Quantity != 20 {
		t.Errorf("stock = %+v", stock)
	}
	if stock.AvgBuyPrice != 60000 || stock.CurrentPrice != 70000 {
		t.Errorf("prices = %v/%v", stock.AvgBuyPrice, stock.CurrentPrice)
	}
	if stock.EvalAmount != 1400000 || stock.ProfitLoss != 200000 {
		t.Errorf("eval/pl = %v/%v", stock.EvalAmount, stock.ProfitLoss)
	}
	if stock.Currency != "KRW" || stock.Market != domain.MarketDomestic {
		t.Errorf("currency/market = %s/%s", stock.Currency, stock.Market)
	}

	cash := records[1]
	if cash.AssetType != domain.AssetTypeCash || cash.EvalAmount != 350000 || cash.Quantity != 1 {
		t.Errorf("cash = %+v", cash)
	}
}

func TestParseDomesticFailureCode(t *testing.T) {
	resp := &balanceResponse{
		ReturnCode: intPtr(8005),
		ReturnMsg:  "조회 권한이 없습니다",
		DayBalRt:   []dayBalance{{StkCd: "005930", RmndQty: "10"}},
	}

	if records := ParseDomestic(resp, testAcct); len(records) != 0 {
		t.Errorf("records = %d, want 0 on failure return_code", len(records))
	}
}

func TestParseDomesticMissingReturnCode(t *testing.T) {
	resp := &balanceResponse{
		DayBalRt: []dayBalance{{StkCd: "005930", RmndQty: "10"}},
	}
	if records := ParseDomestic(resp, testAcct); len(records) != 0 {
		t.Errorf("records = %d, want 0 when return_code absent", len(records))
	}
}

func TestParseDomesticNameFallback(t *testing.T) {
	resp := &balanceResponse{
		ReturnCode: intPtr(0),
		DayBalRt: []dayBalance{
			{StkCd: "005930", RmndQty: "1"},
			{RmndQty: "1"},
		},
	}

	records := ParseDomestic(resp, testAcct)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Name != "005930" {
		t.Errorf("name = %q, want ticker fallback", records[0].Name)
	}
	if records[1].Name != "알 수 없음" {
		t.Errorf("name = %q, want unknown placeholder", records[1].Name)
	}
}

func TestParseDomesticZeroCashDropped(t *testing.T) {
	resp := &balanceResponse{ReturnCode: intPtr(0), DbstBal: "0"}
	if records := ParseDomestic(resp, testAcct); len(records) != 0 {
		t.Errorf("records = %d, want 0", len(records))
	}
}

func TestParseDomesticNumericDbstBal(t *testing.T) {
	// dbst_bal occasionally arrives as a bare number.
	raw := []byte(`{"return_code": 0, "dbst_bal": 12345}`)
	var resp balanceResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	records := ParseDomestic(&resp, testAcct)
	if len(records) != 1 || records[0].EvalAmount != 12345 {
		t.Errorf("records = %+v, want one cash record of 12345", records)
	}
}
