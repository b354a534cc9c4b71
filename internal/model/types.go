// Package model defines domain types used by the product clients.
package model

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// ID is the opaque identifier the products API assigns on creation.
// It is never generated client-side.
type ID string

var integerID = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)

func (id ID) String() string { return string(id) }

// MarshalJSON writes integer-looking ids as bare numbers and anything else as a string,
// matching how json-server style APIs emit them.
func (id ID) MarshalJSON() ([]byte, error) {
	if integerID.MatchString(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(b), 64); err != nil {
		return fmt.Errorf("id: expected string or number, got %s", b)
	}
	*id = ID(b)
	return nil
}

// Price is a non-negative decimal amount. It is encoded as a bare JSON number.
type Price struct {
	decimal.Decimal
}

// NewPrice wraps d as a Price.
func NewPrice(d decimal.Decimal) Price {
	return Price{Decimal: d}
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (p *Price) UnmarshalJSON(b []byte) error {
	return p.Decimal.UnmarshalJSON(b)
}

// Product represents one resource of the products collection.
type Product struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Price Price  `json:"price"`
}

// ProductInput is the body sent on create and update.
type ProductInput struct {
	Name  string `json:"name"`
	Price Price  `json:"price"`
}

// ErrMissingID reports a product from the API without an identifier.
// It is a response fault, so it never matches ErrInvalidInput.
var ErrMissingID = errors.New("product id is missing")

// Check verifies a product decoded from the API carries an identifier.
func (p Product) Check() error {
	if p.ID == "" {
		return ErrMissingID
	}
	return nil
}
