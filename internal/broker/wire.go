package broker

import (
	"encoding/json"

	"github.com/musaihq/holdings/internal/domain"
)

// Number is a numeric wire value. Broker APIs send these inconsistently as
// JSON strings or bare numbers; both forms decode into the raw text and are
// converted on read with a default instead of an error.
type Number string

func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(s)
		return nil
	}
	*n = Number(data)
	return nil
}

// Float converts the value, returning def for missing or non-numeric input.
func (n Number) Float(def float64) float64 {
	return domain.SafeFloat(string(n), def)
}

// Int converts the value, returning def for missing or non-numeric input.
func (n Number) Int(def int64) int64 {
	return domain.SafeInt(string(n), def)
}
