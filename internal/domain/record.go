package domain

import "fmt"

// Market is the listing venue of a holding.
type Market string

const (
	MarketDomestic Market = "domestic"
	MarketOverseas Market = "overseas"
)

// AssetType classifies a record as a security holding or a cash balance.
type AssetType string

const (
	AssetTypeStock AssetType = "stock"
	AssetTypeCash  AssetType = "cash"
)

// AccountType is the ownership class of a brokerage account.
type AccountType string

const (
	AccountTypeIndividual AccountType = "individual"
	AccountTypeCorporate  AccountType = "corporate"
)

// BrokerKind identifies a supported brokerage.
type BrokerKind string

const (
	BrokerKIS    BrokerKind = "kis"
	BrokerKiwoom BrokerKind = "kiwoom"
)

// Display returns the institution display name used in asset records.
func (b BrokerKind) Display() string {
	switch b {
	case BrokerKIS:
		return "한국투자증권"
	case BrokerKiwoom:
		return "키움증권"
	default:
		return string(b)
	}
}

// AssetRecord is the normalized, broker-agnostic representation of one
// holding or cash balance. Amounts are always in the record's native
// currency; home-currency conversion is a downstream concern.
type AssetRecord struct {
	Broker       string      `json:"broker"`
	AccountType  AccountType `json:"account_type"`
	AccountLabel string      `json:"account_label"`
	Market       Market      `json:"market"`
	AssetType    AssetType   `json:"asset_type"`
	Ticker       string      `json:"ticker"`
	Name         string      `json:"name"`
	Quantity     int64       `json:"quantity"`
	AvgBuyPrice  float64     `json:"avg_buy_price"`
	CurrentPrice float64     `json:"current_price"`
	EvalAmount   float64     `json:"eval_amount"`
	ProfitLoss   float64     `json:"profit_loss"`
	ProfitRate   float64     `json:"profit_rate"`
	Currency     string      `json:"currency"`
}

// Key returns the identity tuple of a record. Records are not deduplicated
// by this key; downstream aggregation sums duplicates.
func (r AssetRecord) Key() string {
	return fmt.Sprintf("%s/%s/%s/%s", r.Broker, r.AccountLabel, r.Ticker, r.AssetType)
}

// AccountContext carries the per-account fields stamped onto every record
// a normalizer emits.
type AccountContext struct {
	Broker      BrokerKind
	AccountType AccountType
	Label       string
}

// NewCashRecord builds a cash balance record. Cash always has quantity 1
// and no unrealized profit.
func NewCashRecord(acct AccountContext, market Market, currency, name string, amount float64) AssetRecord {
	return AssetRecord{
		Broker:       acct.Broker.Display(),
		AccountType:  acct.AccountType,
		AccountLabel: acct.Label,
		Market:       market,
		AssetType:    AssetTypeCash,
		Ticker:       currency,
		Name:         name,
		Quantity:     1,
		AvgBuyPrice:  amount,
		CurrentPrice: amount,
		EvalAmount:   amount,
		ProfitLoss:   0,
		ProfitRate:   0,
		Currency:     currency,
	}
}
