package kiwoom

import "github.com/musaihq/holdings/internal/broker"

// Response schemas for the Kiwoom REST API.

type authResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
	ExpiresDt   string `json:"expires_dt"` // absolute expiry, YYYYMMDDHHMMSS in KST
}

// token returns the access token; Kiwoom uses "token" but the fallback
// guards against the field drifting to the OAuth-standard name.
func (r authResponse) token() string {
	if r.Token != "" {
		return r.Token
	}
	return r.AccessToken
}

type dayBalance struct {
	StkCd     string        `json:"stk_cd"`     // ticker
	StkNm     string        `json:"stk_nm"`     // display name
	RmndQty   broker.Number `json:"rmnd_qty"`   // remaining quantity
	BuyUv     broker.Number `json:"buy_uv"`     // buy unit value
	CurPrc    broker.Number `json:"cur_prc"`    // current price
	EvltAmt   broker.Number `json:"evlt_amt"`   // evaluation amount
	EvltvPrft broker.Number `json:"evltv_prft"` // unrealized profit
	PrftRt    broker.Number `json:"prft_rt"`    // profit rate
}

type balanceResponse struct {
	// A missing return_code is a failure; only an explicit 0 is success.
	ReturnCode *int          `json:"return_code"`
	ReturnMsg  string        `json:"return_msg"`
	DayBalRt   []dayBalance  `json:"day_bal_rt"`
	DbstBal    broker.Number `json:"dbst_bal"` // deposit balance
}

// ok reports whether the broker marked the response successful.
func (r *balanceResponse) ok() bool {
	return r.ReturnCode != nil && *r.ReturnCode == 0
}
