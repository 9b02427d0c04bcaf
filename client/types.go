// Package client is the single choke point for every call to the backend
// REST API. It attaches the bearer token, normalizes the backend's
// inconsistent field naming into canonical Go types, and translates
// non-success responses into descriptive failures.
package client

import (
	"fmt"
	"math"
	"strings"

	"github.com/comanda-io/comanda/core"
)

// Status is an order's lifecycle state as the backend spells it.
type Status string

const (
	StatusPending       Status = "pendiente"
	StatusProcessing    Status = "procesando"
	StatusInPreparation Status = "en preparacion"
	StatusReady         Status = "listo"
)

// NormalizeStatus folds case and the accented spelling the backend sometimes
// returns for in-preparation orders.
func NormalizeStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pendiente":
		return StatusPending
	case "procesando":
		return StatusProcessing
	case "en preparacion", "en preparación":
		return StatusInPreparation
	case "listo":
		return StatusReady
	}
	return Status(strings.ToLower(strings.TrimSpace(s)))
}

// Product is a menu entry. Read-mostly; the client holds a cached copy per
// view refresh.
type Product struct {
	ID    string
	Name  string
	Price float64
}

// User is a staff account, mutable only through the admin view.
type User struct {
	ID   string
	Name string
	Role core.Role
}

// OrderItem is one line of a confirmed order.
type OrderItem struct {
	ProductID string
	Quantity  int
}

// Order is a backend-confirmed order. The client never mutates it locally;
// it re-fetches after every write.
type Order struct {
	ID     string
	Table  int
	Status Status
	Items  []OrderItem
	Total  float64
}

// SalesRow is one backend-computed sales summary line, rendered verbatim.
type SalesRow struct {
	WaiterName     string
	ProductName    string
	QuantitySold   float64
	TotalCollected float64
}

// Credentials are what the login endpoint wants: a password and the role the
// user claims.
type Credentials struct {
	Password string `json:"clave"`
	Role     string `json:"rol"`
}

// OrderRequest is the minimal wire shape for creating an order.
type OrderRequest struct {
	Table int                `json:"mesa"`
	Items []OrderItemRequest `json:"productos"`
	Total float64            `json:"total"`
}

// OrderItemRequest is one line of an order creation request.
type OrderItemRequest struct {
	ProductID string `json:"productoId"`
	Quantity  int    `json:"cantidad"`
}

// UserPatch is a validated edit command for a user. Zero-value fields are
// left unchanged on the server.
type UserPatch struct {
	Role     core.Role
	Password string
}

// Validate rejects patches that would be refused or misrouted server-side.
func (p UserPatch) Validate() error {
	if p.Role == "" && p.Password == "" {
		return fmt.Errorf("%w: user patch changes nothing", core.ErrInvalidConfiguration)
	}
	if p.Role != "" && !p.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", core.ErrInvalidConfiguration, p.Role)
	}
	return nil
}

func (p UserPatch) payload() map[string]interface{} {
	body := map[string]interface{}{}
	if p.Role != "" {
		body["rol"] = string(p.Role)
	}
	if p.Password != "" {
		body["clave"] = p.Password
	}
	return body
}

// ProductPatch is a validated edit command for a product.
type ProductPatch struct {
	Name  string
	Price float64
}

// Validate rejects empty names and non-finite or negative prices.
func (p ProductPatch) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is empty", core.ErrInvalidConfiguration)
	}
	if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price < 0 {
		return fmt.Errorf("%w: invalid price %v", core.ErrInvalidConfiguration, p.Price)
	}
	return nil
}

func (p ProductPatch) payload() map[string]interface{} {
	return map[string]interface{}{
		"nombre": p.Name,
		"precio": p.Price,
	}
}
