package order

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/ordercalc/internal/errors"
)

func TestParseOrders_ValidDocument(t *testing.T) {
	t.Parallel()

	doc := `[
		{
			"orderId": "O1",
			"customer": "Alice",
			"status": "shipped",
			"items": [
				{"product": "Widget", "quantity": 2, "price": 10.0},
				{"product": "Gadget", "quantity": 1, "price": 4.5}
			]
		},
		{
			"orderId": "O2",
			"customer": "Bob",
			"status": "pending",
			"items": [
				{"product": "Widget", "quantity": 3, "price": 10.0}
			]
		}
	]`

	orders, err := ParseOrders(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, "O1", orders[0].OrderID())
	assert.Equal(t, "Alice", orders[0].Customer())
	assert.True(t, orders[0].Fulfilled())
	assert.InDelta(t, 24.5, orders[0].Total(), 1e-9)
	require.Len(t, orders[0].Items(), 2)

	assert.Equal(t, "O2", orders[1].OrderID())
	assert.False(t, orders[1].Fulfilled())
	assert.InDelta(t, 30.0, orders[1].Total(), 1e-9)
}

func TestParseOrders_EmptyArray(t *testing.T) {
	t.Parallel()

	orders, err := ParseOrders(strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestParseOrders_MalformedDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"truncated JSON", `[{"orderId": "O1"`},
		{"not an array", `{"orderId": "O1"}`},
		{"wrong quantity type", `[{"orderId":"O1","customer":"A","status":"shipped","items":[{"product":"X","quantity":"two","price":1}]}]`},
		{"wrong price type", `[{"orderId":"O1","customer":"A","status":"shipped","items":[{"product":"X","quantity":2,"price":"cheap"}]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			orders, err := ParseOrders(strings.NewReader(tt.doc))

			var pErr apperrors.ParseError
			require.Error(t, err)
			assert.True(t, errors.As(err, &pErr), "error should be a ParseError, got %T", err)
			assert.Nil(t, orders)
		})
	}
}

func TestParseOrders_ValidationFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		doc       string
		wantField string
	}{
		{
			name:      "missing order ID",
			doc:       `[{"customer":"A","status":"shipped","items":[{"product":"X","quantity":1,"price":1}]}]`,
			wantField: "orderId",
		},
		{
			name:      "empty items",
			doc:       `[{"orderId":"O1","customer":"A","status":"shipped","items":[]}]`,
			wantField: "items",
		},
		{
			name:      "zero quantity",
			doc:       `[{"orderId":"O1","customer":"A","status":"shipped","items":[{"product":"X","quantity":0,"price":1}]}]`,
			wantField: "quantity",
		},
		{
			name:      "negative price",
			doc:       `[{"orderId":"O1","customer":"A","status":"shipped","items":[{"product":"X","quantity":1,"price":-2}]}]`,
			wantField: "price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			orders, err := ParseOrders(strings.NewReader(tt.doc))

			var vErr apperrors.ValidationError
			require.Error(t, err)
			require.True(t, errors.As(err, &vErr), "error should wrap a ValidationError, got %T", err)
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.Nil(t, orders)

			// The wrapper annotates the offending order's position.
			assert.Contains(t, err.Error(), "order 0")
		})
	}
}
