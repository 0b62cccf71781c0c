package domain

import "github.com/shopspring/decimal"

func init() {
	// Amounts travel as JSON numbers, both to the repository and the admin API.
	decimal.MarshalJSONWithoutQuotes = true
}
