package views

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/comanda-io/comanda/client"
	"github.com/comanda-io/comanda/core"
)

// KitchenGateway is the slice of the client the kitchen dashboard needs.
type KitchenGateway interface {
	ListOrders(ctx context.Context) []client.Order
	ListProducts(ctx context.Context) []client.Product
	UpdateOrderStatus(ctx context.Context, orderID string, status client.Status) (map[string]interface{}, error)
}

// KitchenView shows pending and ready orders and advances them to ready.
// The displayed state is always a fresh read after a confirmed write; no
// local mutation ever happens.
type KitchenView struct {
	gateway  KitchenGateway
	prompter Prompter
	logger   core.Logger
	out      io.Writer

	orders   []client.Order
	products []client.Product
}

// NewKitchenView creates the kitchen dashboard.
func NewKitchenView(gateway KitchenGateway, prompter Prompter, logger core.Logger, out io.Writer) *KitchenView {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &KitchenView{gateway: gateway, prompter: prompter, logger: logger, out: out}
}

// Refresh re-reads the authoritative order list and the product catalog.
func (v *KitchenView) Refresh(ctx context.Context) {
	v.orders = v.gateway.ListOrders(ctx)
	v.products = v.gateway.ListProducts(ctx)
}

// MarkReady advances one order to "listo" after explicit confirmation. On
// success the full list is re-fetched; on failure the raw error message is
// surfaced and the prior list stays on screen unchanged.
func (v *KitchenView) MarkReady(ctx context.Context, orderID string) error {
	confirmed, err := v.prompter.Confirm("¿Marcar pedido como LISTO?")
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	if _, err := v.gateway.UpdateOrderStatus(ctx, orderID, client.StatusReady); err != nil {
		v.logger.Error("Status update failed", map[string]interface{}{
			"operation": "mark_ready",
			"order_id":  orderID,
			"error":     err.Error(),
		})
		fmt.Fprintf(v.out, "Error: %v\n", err)
		return err
	}

	v.orders = v.gateway.ListOrders(ctx)
	return nil
}

// Render prints the pending and ready sections, recomputing both filters
// from the authoritative list.
func (v *KitchenView) Render() {
	pending := PendingOrders(v.orders)
	ready := ReadyOrders(v.orders)

	fmt.Fprintf(v.out, "\n👨‍🍳 Panel de Cocina — %d pendientes, %d listos\n\n", len(pending), len(ready))
	v.renderSection("Pedidos Pendientes", pending)
	v.renderSection("Pedidos Listos", ready)
	if len(v.orders) == 0 {
		fmt.Fprintln(v.out, "No hay pedidos registrados")
	}
}

func (v *KitchenView) renderSection(title string, orders []client.Order) {
	if len(orders) == 0 {
		return
	}
	fmt.Fprintf(v.out, "%s\n", title)
	w := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMESA\tESTADO\tPRODUCTOS")
	for _, o := range orders {
		var lines []string
		for _, it := range o.Items {
			lines = append(lines, fmt.Sprintf("%dx %s", it.Quantity, productName(v.products, it.ProductID)))
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", o.ID, o.Table, StatusLabel(o.Status), strings.Join(lines, ", "))
	}
	w.Flush()
	fmt.Fprintln(v.out)
}

// Run drives the interactive loop until the user quits.
func (v *KitchenView) Run(ctx context.Context) error {
	v.Refresh(ctx)
	for {
		v.Render()
		choice, err := v.prompter.Ask("[l] marcar listo  [r] refrescar  [q] salir:")
		if err != nil {
			return err
		}
		switch strings.ToLower(choice) {
		case "l":
			id, err := v.prompter.Ask("ID del pedido:")
			if err != nil {
				return err
			}
			if id != "" {
				// Errors were already surfaced; the loop continues with
				// the previous list.
				_ = v.MarkReady(ctx, id)
			}
		case "r":
			v.Refresh(ctx)
		case "q":
			return nil
		}
	}
}
