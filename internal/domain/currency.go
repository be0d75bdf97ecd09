package domain

import "time"

// CurrencyUAC is the base unit of the wallet. Every platform credit has a
// rate expressed relative to it.
const CurrencyUAC = "uac"

// Currency is either the base unit or a platform-credit code.
type Currency struct {
	Code      string
	Name      string
	Active    bool
	CreatedAt time.Time
}
