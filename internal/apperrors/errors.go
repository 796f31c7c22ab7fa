package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrCurrencyMismatch indicates that two monetary values with different
// currency codes were combined. Amounts are never coerced across currencies.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// ErrInvalidAmount indicates a non-positive ledger entry amount. Direction is
// carried by the transaction kind, never by the sign of the amount.
var ErrInvalidAmount = errors.New("transaction amount must be positive")

// ErrInvalidTransition indicates a reservation status change that is not in
// the allowed transition table.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrPaymentRequired indicates an attempt to deliver a reservation whose
// ledger shows no payment, without the explicit override.
var ErrPaymentRequired = errors.New("payment required before delivery")

// ErrTerminalReservation indicates a ledger entry against a cancelled
// reservation that is not a refund.
var ErrTerminalReservation = errors.New("reservation is terminal")

// ErrConflict indicates an optimistic-concurrency failure: the record was
// modified since it was loaded. Callers should reload and retry.
var ErrConflict = errors.New("conflicting concurrent modification")
