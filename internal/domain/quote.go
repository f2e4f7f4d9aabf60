// Package domain contains core business entities and rules.
package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Quote is a priced business proposal as listed for an associate.
// Quotes are owned by the upstream quote service and are read-only here.
type Quote struct {
	// QuoteID is the unique identifier and the row identity key.
	QuoteID string

	// QuoteCode is the display code. Nil when the upstream omits it.
	QuoteCode *string

	// QuoteName is the human name of the quote. Nil when the upstream omits it.
	QuoteName *string

	// QuoteDate is the raw upstream date value. It is parsed only for display.
	QuoteDate string

	CompanyName     string
	PrimaryCustomer string

	// Origin is the channel the quote came from. Nil when unknown.
	Origin *string

	ServiceType string
	CreatedBy   string

	// TotalAmount is the quoted value in rupees.
	TotalAmount Amount

	// QuoteStatus is free text such as "Draft" or "Approved-Pending".
	QuoteStatus string

	IsApproved bool

	// AgeingDays is the number of days since the quote was raised. Nil when unknown.
	AgeingDays *int
}

// Code returns the quote code or an empty string when absent.
func (q *Quote) Code() string {
	if q.QuoteCode == nil {
		return ""
	}

	return *q.QuoteCode
}

// Name returns the quote name or an empty string when absent.
func (q *Quote) Name() string {
	if q.QuoteName == nil {
		return ""
	}

	return *q.QuoteName
}

// Amount is a monetary value that may be missing or malformed upstream.
// An invalid Amount carries no value and must never be formatted as a number.
type Amount struct {
	Value decimal.Decimal
	Valid bool
}

// NewAmount wraps a known decimal value.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Value: d, Valid: true}
}

// maxAmountExponent bounds the decimal exponent of parsed amounts in both
// directions; maxAmount bounds their magnitude.
const maxAmountExponent = 30

var maxAmount = decimal.New(1, maxAmountExponent)

// ParseAmount parses a textual amount. Blank or non-numeric input yields an
// invalid Amount, as does a value whose exponent or magnitude is out of range
// (|exponent| > 30 or |value| >= 1e30).
func ParseAmount(raw string) Amount {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Amount{}
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Amount{}
	}

	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return Amount{}
	}

	if d.Abs().Cmp(maxAmount) >= 0 {
		return Amount{}
	}

	return NewAmount(d)
}

// LatestQuotesFilter scopes the upstream "latest quotes" query.
type LatestQuotesFilter struct {
	CompanyID   *string
	AssociateID *string
	IsAssociate bool
}

// FilterFor builds the associate-scoped filter for an identity.
func FilterFor(id Identity) LatestQuotesFilter {
	return LatestQuotesFilter{
		CompanyID:   id.CompanyID,
		AssociateID: id.AssociateID,
		IsAssociate: true,
	}
}
