package entities

import "errors"

// Business-rule failures surfaced to callers. Handlers match these with
// errors.Is to pick a response code; anything else is a storage fault.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrNotFound          = errors.New("not found")
	ErrGameNotActive     = errors.New("game is not active")
	ErrDrawExhausted     = errors.New("all numbers have been called")
	ErrNumberNotOnCard   = errors.New("number is not on the card")
	ErrAlreadySettled    = errors.New("game already settled")
	ErrAlreadyRegistered = errors.New("account already registered")
)
