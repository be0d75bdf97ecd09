package domain

import "errors"

var (
	// Ledger errors
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountInactive   = errors.New("account is deactivated")
	ErrEntryNotFound     = errors.New("ledger entry not found")
	ErrInvalidEntryKind  = errors.New("unknown entry kind")
	ErrBusy              = errors.New("operation conflicted with concurrent writes")

	// Exchange errors
	ErrUnknownCurrency = errors.New("unknown or inactive currency")
	ErrSameCurrency    = errors.New("cannot exchange a currency for itself")
	ErrInvalidRate     = errors.New("rate must be positive")

	// Transfer errors
	ErrSameAccount = errors.New("cannot transfer to same account")

	// Payment errors
	ErrDuplicateReference = errors.New("external reference already processed")
	ErrMissingReference   = errors.New("external reference is required")
	ErrInvalidPaymentKind = errors.New("payment kind must be topup or subscription")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)
