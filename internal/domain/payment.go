package domain

// PaymentKind is the kind of an external payment confirmation.
type PaymentKind string

const (
	PaymentKindTopUp        PaymentKind = "topup"
	PaymentKindSubscription PaymentKind = "subscription"
)

// Valid reports whether k is a known payment kind.
func (k PaymentKind) Valid() bool {
	return k == PaymentKindTopUp || k == PaymentKindSubscription
}

// EntryKind maps the payment kind to the ledger entry kind it produces.
func (k PaymentKind) EntryKind() EntryKind {
	if k == PaymentKindSubscription {
		return EntryKindSubscription
	}
	return EntryKindTopUp
}
