package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/comanda-io/comanda/client"
	"github.com/comanda-io/comanda/composer"
	"github.com/comanda-io/comanda/core"
)

// WaiterGateway is the slice of the client the waiter dashboard needs.
type WaiterGateway interface {
	ListProducts(ctx context.Context) []client.Product
	ListOrders(ctx context.Context) []client.Order
	CreateOrder(ctx context.Context, req client.OrderRequest) (map[string]interface{}, error)
}

// WaiterView composes draft orders from the menu and submits them. The cart
// itself lives in the composer; this view only stages the table number and
// renders state.
type WaiterView struct {
	gateway  WaiterGateway
	cart     *composer.Composer
	prompter Prompter
	logger   core.Logger
	out      io.Writer

	table    int
	products []client.Product
	orders   []client.Order
}

// NewWaiterView creates the waiter dashboard with an empty draft.
func NewWaiterView(gateway WaiterGateway, prompter Prompter, logger core.Logger, out io.Writer) *WaiterView {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &WaiterView{
		gateway:  gateway,
		cart:     composer.New(gateway, logger),
		prompter: prompter,
		logger:   logger,
		out:      out,
	}
}

// Refresh re-reads the menu and the confirmed order list.
func (v *WaiterView) Refresh(ctx context.Context) {
	v.products = v.gateway.ListProducts(ctx)
	v.orders = v.gateway.ListOrders(ctx)
}

// Render prints the menu, the current draft and the confirmed orders.
func (v *WaiterView) Render() {
	fmt.Fprintf(v.out, "\n🍽️ Panel de Mesero")
	if v.table > 0 {
		fmt.Fprintf(v.out, " — mesa %d", v.table)
	}
	fmt.Fprintln(v.out)

	fmt.Fprintln(v.out, "\nMenú Disponible")
	w := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tPRODUCTO\tPRECIO")
	for i, p := range v.products {
		fmt.Fprintf(w, "%d\t%s\t$%.2f\n", i+1, p.Name, p.Price)
	}
	w.Flush()

	fmt.Fprintln(v.out, "\n🛒 Pedido Actual")
	items := v.cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(v.out, "No hay productos agregados")
	} else {
		w = tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
		for _, it := range items {
			fmt.Fprintf(w, "%dx\t%s\t$%.2f c/u\n", it.Quantity, it.DisplayName, it.UnitPrice)
		}
		w.Flush()
	}
	fmt.Fprintf(v.out, "Total: $%.2f\n", v.cart.Total())

	if len(v.orders) > 0 {
		fmt.Fprintln(v.out, "\n📝 Pedidos Realizados")
		w = tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MESA\tESTADO\tTOTAL")
		for _, o := range v.orders {
			fmt.Fprintf(w, "%d\t%s\t$%.2f\n", o.Table, StatusLabel(o.Status), o.Total)
		}
		w.Flush()
	}
}

// Submit finalizes the draft for the staged table. On success the confirmed
// order list is refreshed and the server's message shown; on failure the
// draft stays intact for retry.
func (v *WaiterView) Submit(ctx context.Context) {
	if v.table < 1 || len(v.cart.Items()) == 0 {
		fmt.Fprintln(v.out, "Por favor ingresa el número de mesa y agrega productos")
		return
	}

	outcome, err := v.cart.Submit(ctx, v.table)
	if err != nil {
		fmt.Fprintf(v.out, "Error: %v\n", err)
		return
	}

	v.table = 0
	v.orders = v.gateway.ListOrders(ctx)
	fmt.Fprintln(v.out, outcome.Message)
}

// addByIndex adds the i-th menu entry (1-based) to the draft.
func (v *WaiterView) addByIndex(i int) {
	if i < 1 || i > len(v.products) {
		fmt.Fprintln(v.out, "Producto inválido")
		return
	}
	p := v.products[i-1]
	v.cart.AddItem(p.ID, p.Price, p.Name)
}

// removeByIndex removes one unit of the i-th menu entry from the draft.
func (v *WaiterView) removeByIndex(i int) {
	if i < 1 || i > len(v.products) {
		fmt.Fprintln(v.out, "Producto inválido")
		return
	}
	p := v.products[i-1]
	v.cart.RemoveItem(p.ID, p.Price)
}

// Run drives the interactive loop until the user quits.
func (v *WaiterView) Run(ctx context.Context) error {
	v.Refresh(ctx)
	for {
		v.Render()
		choice, err := v.prompter.Ask("\n[m] mesa  [a#] agregar  [r#] quitar  [s] enviar  [u] refrescar  [q] salir:")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		choice = strings.ToLower(strings.TrimSpace(choice))
		switch {
		case choice == "m":
			answer, err := v.prompter.Ask("Número de Mesa:")
			if err != nil {
				return err
			}
			table, convErr := strconv.Atoi(answer)
			if convErr != nil || table < 1 {
				fmt.Fprintln(v.out, "Mesa inválida")
				continue
			}
			v.table = table
		case strings.HasPrefix(choice, "a"):
			if i, convErr := strconv.Atoi(choice[1:]); convErr == nil {
				v.addByIndex(i)
			}
		case strings.HasPrefix(choice, "r"):
			if i, convErr := strconv.Atoi(choice[1:]); convErr == nil {
				v.removeByIndex(i)
			}
		case choice == "s":
			v.Submit(ctx)
		case choice == "u":
			v.Refresh(ctx)
		case choice == "q":
			return nil
		}
	}
}
