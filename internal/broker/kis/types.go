package kis

import "github.com/musaihq/holdings/internal/broker"

// Response schemas for the KIS REST API. Field names are the broker's wire
// contract and must match exactly; numeric values arrive as strings or
// bare numbers depending on the endpoint revision.

type authResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// token returns the access token regardless of which field the broker used.
func (r authResponse) token() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}

type domesticHolding struct {
	Pdno        string        `json:"pdno"`          // ticker
	PrdtName    string        `json:"prdt_name"`     // display name
	HldgQty     broker.Number `json:"hldg_qty"`      // held quantity
	PchsAvgPric broker.Number `json:"pchs_avg_pric"` // average buy price
	Prpr        broker.Number `json:"prpr"`          // current price
	EvluAmt     broker.Number `json:"evlu_amt"`      // evaluation amount
	EvluPflsAmt broker.Number `json:"evlu_pfls_amt"` // unrealized profit/loss
	EvluPflsRt  broker.Number `json:"evlu_pfls_rt"`  // profit rate
}

type domesticDeposit struct {
	NxdyExccAmt broker.Number `json:"nxdy_excc_amt"` // next-day settlement amount
}

type domesticPayload struct {
	Output1 []domesticHolding `json:"output1"`
	Output2 []domesticDeposit `json:"output2"`
}

type domesticResponse struct {
	RtCd string `json:"rt_cd"`
	Msg1 string `json:"msg1"`

	// Holdings arrive either nested under "output" or at the top level,
	// depending on the endpoint revision.
	Output *domesticPayload `json:"output"`
	domesticPayload
}

// payload returns the holdings container, preferring the nested form.
func (r *domesticResponse) payload() domesticPayload {
	if r.Output != nil {
		return *r.Output
	}
	return r.domesticPayload
}

type overseasHolding struct {
	Pdno         string        `json:"pdno"`
	PrdtName     string        `json:"prdt_name"`
	CcldQtySmtl1 broker.Number `json:"ccld_qty_smtl1"` // settled quantity total
	BuyCrcyCd    string        `json:"buy_crcy_cd"`    // purchase currency
	AvgUnpr3     broker.Number `json:"avg_unpr3"`      // effective average price
	PchsAvgPric  broker.Number `json:"pchs_avg_pric"`  // fallback average price
	OvrsNowPric1 broker.Number `json:"ovrs_now_pric1"` // current price
	FrcrEvluAmt2 broker.Number `json:"frcr_evlu_amt2"` // evaluation in foreign currency
	EvluPflsAmt2 broker.Number `json:"evlu_pfls_amt2"` // unrealized profit/loss
	EvluPflsRt1  broker.Number `json:"evlu_pfls_rt1"`  // profit rate
}

type overseasDeposit struct {
	CrcyCd       string        `json:"crcy_cd"`
	FrcrDnclAmt2 broker.Number `json:"frcr_dncl_amt_2"` // foreign-currency deposit
}

type overseasResponse struct {
	RtCd    string            `json:"rt_cd"`
	Msg1    string            `json:"msg1"`
	Output1 []overseasHolding `json:"output1"`
	Output2 []overseasDeposit `json:"output2"`
}
