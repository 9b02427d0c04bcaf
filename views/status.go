package views

import "github.com/comanda-io/comanda/client"

// StatusLabel maps a wire status to its display label.
func StatusLabel(s client.Status) string {
	switch s {
	case client.StatusPending:
		return "⏳ Pendiente"
	case client.StatusProcessing:
		return "🔄 Procesando"
	case client.StatusInPreparation:
		return "👨‍🍳 En Preparación"
	case client.StatusReady:
		return "✅ Listo"
	}
	return string(s)
}

// PendingOrders filters the orders still in the kitchen's hands. Pure
// function over the authoritative list, recomputed on every render.
func PendingOrders(orders []client.Order) []client.Order {
	out := make([]client.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status != client.StatusReady {
			out = append(out, o)
		}
	}
	return out
}

// ReadyOrders filters the orders already marked ready.
func ReadyOrders(orders []client.Order) []client.Order {
	out := make([]client.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == client.StatusReady {
			out = append(out, o)
		}
	}
	return out
}

// productName resolves a product id against the cached catalog.
func productName(products []client.Product, id string) string {
	for _, p := range products {
		if p.ID == id {
			return p.Name
		}
	}
	return "Producto desconocido"
}
