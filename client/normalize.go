package client

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/comanda-io/comanda/core"
)

// The backend has shipped with more than one spelling for several fields:
// ids arrive as _id or id, order line items reference their product as a
// bare string or as an object under producto/productoId, and the sales
// summary quantity has a long-lived typo. All of that tolerance lives here,
// at the boundary, so the rest of the program sees one canonical shape.

type wireProduct struct {
	ID    string  `json:"_id"`
	AltID string  `json:"id"`
	Name  string  `json:"nombre"`
	Price float64 `json:"precio"`
}

func (w wireProduct) normalize() Product {
	return Product{
		ID:    firstNonEmpty(w.ID, w.AltID),
		Name:  w.Name,
		Price: w.Price,
	}
}

type wireUser struct {
	ID    string `json:"_id"`
	AltID string `json:"id"`
	Name  string `json:"nombre"`
	Role  string `json:"rol"`
}

func (w wireUser) normalize() User {
	return User{
		ID:   firstNonEmpty(w.ID, w.AltID),
		Name: w.Name,
		Role: core.Role(w.Role),
	}
}

type wireOrder struct {
	ID    string          `json:"_id"`
	AltID string          `json:"id"`
	Table int             `json:"mesa"`
	State string          `json:"estado"`
	Items []wireOrderItem `json:"productos"`
	Total float64         `json:"total"`
}

func (w wireOrder) normalize() Order {
	items := make([]OrderItem, 0, len(w.Items))
	for _, it := range w.Items {
		items = append(items, OrderItem{
			ProductID: it.productID(),
			Quantity:  it.Quantity,
		})
	}
	return Order{
		ID:     firstNonEmpty(w.ID, w.AltID),
		Table:  w.Table,
		Status: NormalizeStatus(w.State),
		Items:  items,
		Total:  w.Total,
	}
}

type wireOrderItem struct {
	Product  json.RawMessage `json:"producto"`
	AltID    string          `json:"productoId"`
	Quantity int             `json:"cantidad"`
}

// productID resolves the product reference, which may arrive as a bare id
// string, as {producto}/{productoId}, or as an embedded product object.
func (w wireOrderItem) productID() string {
	if id := refID(w.Product); id != "" {
		return id
	}
	return w.AltID
}

// refID extracts an id from a reference that is either a JSON string or an
// object carrying the id under one of the known names.
func refID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Producto  string `json:"producto"`
		ProductID string `json:"productoId"`
		MongoID   string `json:"_id"`
		ID        string `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	return firstNonEmpty(obj.Producto, obj.ProductID, obj.MongoID, obj.ID)
}

type wireSalesRow struct {
	WaiterName   string   `json:"nombreMesero"`
	ProductName  string   `json:"nombreProducto"`
	Quantity     *float64 `json:"cantidadVendida"`
	QuantityTypo *float64 `json:"cantidadVendidad"`
	QuantityAlt  *float64 `json:"cantidad"`
	Collected    float64  `json:"totalRecaudado"`
}

func (w wireSalesRow) normalize() SalesRow {
	row := SalesRow{
		WaiterName:  w.WaiterName,
		ProductName: w.ProductName,
	}
	// Ordered fallback: correct spelling, then the deployed typo, then the
	// short form.
	for _, q := range []*float64{w.Quantity, w.QuantityTypo, w.QuantityAlt} {
		if q != nil && !math.IsNaN(*q) && !math.IsInf(*q, 0) {
			row.QuantitySold = *q
			break
		}
	}
	if !math.IsNaN(w.Collected) && !math.IsInf(w.Collected, 0) {
		row.TotalCollected = w.Collected
	}
	return row
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
