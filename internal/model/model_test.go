package model

import (
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductInputEncodesPriceAsNumber(t *testing.T) {
	in, err := ParseInput(" Pen ", "1.5")
	require.NoError(t, err)
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Pen","price":1.5}`, string(b))
}

func TestProductDecodesNumericAndStringIDs(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"name":"Pen","price":1.5}`), &p))
	assert.Equal(t, ID("7"), p.ID)
	assert.Equal(t, "1.5", p.Price.String())

	var q Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a1f3","name":"Ink","price":"0"}`), &q))
	assert.Equal(t, ID("a1f3"), q.ID)
	assert.True(t, q.Price.IsZero())
}

func TestIDRejectsObjects(t *testing.T) {
	var p Product
	err := json.Unmarshal([]byte(`{"id":{"x":1},"name":"Pen","price":1}`), &p)
	require.Error(t, err)
}

func TestIDMarshal(t *testing.T) {
	b, err := json.Marshal(map[string]ID{"a": "12", "b": "007", "c": "x-1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":12,"b":"007","c":"x-1"}`, string(b))
}

func TestParseInputRejectsMalformed(t *testing.T) {
	cases := []struct {
		name, price string
		field       string
	}{
		{"", "1", "name"},
		{"   ", "1", "name"},
		{"Pen", "", "price"},
		{"Pen", "NaN", "price"},
		{"Pen", "abc", "price"},
		{"Pen", "-0.01", "price"},
		{"Pen", "1e309", "price"},
		{"Pen", "2e308", "price"},
		{"Pen", "1e2000000000", "price"},
		{"Pen", "1e-2000000000", "price"},
	}
	for _, tc := range cases {
		_, err := ParseInput(tc.name, tc.price)
		require.Error(t, err, "name=%q price=%q", tc.name, tc.price)
		assert.True(t, errors.Is(err, ErrInvalidInput))
		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, tc.field, ve.Field)
	}
}

func TestParseInputAcceptsZeroPrice(t *testing.T) {
	in, err := ParseInput("Free sample", "0")
	require.NoError(t, err)
	assert.True(t, in.Price.IsZero())
}

func TestParsePriceLargestEncodable(t *testing.T) {
	p, err := ParsePrice("1e308")
	require.NoError(t, err)
	b, err := json.Marshal(ProductInput{Name: "Pen", Price: p})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"price":1`)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("  7 ")
	require.NoError(t, err)
	assert.Equal(t, ID("7"), id)

	_, err = ParseID(" ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProductCheck(t *testing.T) {
	assert.NoError(t, Product{ID: "1", Name: "Pen"}.Check())
	err := Product{Name: "Pen"}.Check()
	assert.ErrorIs(t, err, ErrMissingID)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}
