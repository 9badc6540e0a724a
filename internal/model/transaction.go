// Package model defines the core domain models used throughout the application.
package model

// Direction indicates whether a payment enters or leaves the bank.
type Direction string

// Transaction direction constants.
const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// Valid reports whether the direction is one of the known values.
func (d Direction) Valid() bool {
	return d == DirectionIncoming || d == DirectionOutgoing
}

// NormalizedTransaction is a single payment record after parsing and
// column normalization. It is produced once by the ingest stage and never
// mutated afterwards; each pipeline invocation owns its records exclusively.
type NormalizedTransaction struct {
	ID                  string
	Direction           Direction
	AmountMinor         int64 // sign-normalized, minor currency units
	CounterpartyName    string
	CounterpartyAddress string
	NaturalPerson       bool // counterparty is a private individual
	BankName            string
	BankAddress         string
	BankCountryField    string // free-text country column from the source file
	CountryCode         string
	City                string
	SwiftCode           string
	CorrespondentInfo   string // incoming only
	PaymentDetails      string // outgoing only
}
