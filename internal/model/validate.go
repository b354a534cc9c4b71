package model

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is matched by every ValidationError.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError reports a field rejected before any request is sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// maxPriceExponent bounds prices to what a JSON number (float64) can carry.
const maxPriceExponent = 308

// ParsePrice parses user text into a Price. Zero is accepted.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Price{}, &ValidationError{Field: "price", Reason: "is required"}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, &ValidationError{Field: "price", Reason: "must be a number"}
	}
	if d.IsNegative() {
		return Price{}, &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	// The exponent is checked before d is ever expanded into digits.
	exp := int64(d.Exponent())
	if exp < -maxPriceExponent || exp+int64(d.NumDigits()) > maxPriceExponent+1 {
		return Price{}, &ValidationError{Field: "price", Reason: "is out of range"}
	}
	if _, err := strconv.ParseFloat(d.String(), 64); err != nil {
		return Price{}, &ValidationError{Field: "price", Reason: "is out of range"}
	}
	return NewPrice(d), nil
}

// ParseID trims s and rejects an empty identifier.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &ValidationError{Field: "id", Reason: "is required"}
	}
	return ID(s), nil
}

// ParseInput builds a ProductInput from raw name and price text.
// All field errors are joined.
func ParseInput(name, price string) (ProductInput, error) {
	var errs []error
	name = strings.TrimSpace(name)
	if name == "" {
		errs = append(errs, &ValidationError{Field: "name", Reason: "is required"})
	}
	p, err := ParsePrice(price)
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return ProductInput{}, errors.Join(errs...)
	}
	return ProductInput{Name: name, Price: p}, nil
}
