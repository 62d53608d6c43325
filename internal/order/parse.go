package order

import (
	"encoding/json"
	"io"

	apperrors "github.com/agbru/ordercalc/internal/errors"
)

// itemDocument is the wire representation of a single item line in the input
// JSON document.
type itemDocument struct {
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// orderDocument is the wire representation of a single order in the input
// JSON document.
type orderDocument struct {
	OrderID  string         `json:"orderId"`
	Customer string         `json:"customer"`
	Status   string         `json:"status"`
	Items    []itemDocument `json:"items"`
}

// ParseOrders decodes a JSON array of order documents from r and constructs
// validated Order entities in document order.
//
// Decoding failures (malformed JSON, wrong field types) are returned as an
// apperrors.ParseError. Field-level violations are returned as the
// ValidationError produced by the entity constructors, wrapped with the
// offending order's position and, when available, its ID.
//
// Returns:
//   - []*Order: The validated orders, in input order.
//   - error: The first decoding or validation failure encountered.
func ParseOrders(r io.Reader) ([]*Order, error) {
	var docs []orderDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&docs); err != nil {
		return nil, apperrors.ParseError{Cause: err}
	}

	orders := make([]*Order, 0, len(docs))
	for i, doc := range docs {
		items := make([]Item, 0, len(doc.Items))
		for j, itemDoc := range doc.Items {
			item, err := NewItem(itemDoc.Product, itemDoc.Quantity, itemDoc.Price)
			if err != nil {
				return nil, apperrors.WrapError(err, "order %d (%q), item %d", i, doc.OrderID, j)
			}
			items = append(items, item)
		}

		ord, err := NewOrder(doc.OrderID, doc.Customer, items, doc.Status)
		if err != nil {
			return nil, apperrors.WrapError(err, "order %d (%q)", i, doc.OrderID)
		}
		orders = append(orders, ord)
	}

	return orders, nil
}
