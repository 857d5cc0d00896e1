// Package api holds the request and response messages of the splitledger.v1
// RPC services. Messages are plain structs encoded as JSON; field tags carry
// both the wire names and the validation rules checked by the service layer.
package api

import "github.com/shopspring/decimal"

func init() {
	// Amounts travel as JSON numbers (e.g. 12.5) rather than strings.
	decimal.MarshalJSONWithoutQuotes = true
}
