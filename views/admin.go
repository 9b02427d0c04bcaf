package views

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/comanda-io/comanda/client"
	"github.com/comanda-io/comanda/core"
)

// AdminGateway is the slice of the client the admin dashboard needs.
type AdminGateway interface {
	ListUsers(ctx context.Context) []client.User
	ListProducts(ctx context.Context) []client.Product
	ListOrders(ctx context.Context) []client.Order
	SalesSummary(ctx context.Context) []client.SalesRow
	UpdateUser(ctx context.Context, id string, patch client.UserPatch) error
	DeleteUser(ctx context.Context, id string) error
	UpdateProduct(ctx context.Context, id string, patch client.ProductPatch) error
	DeleteProduct(ctx context.Context, id string) error
}

// AdminView shows aggregate data and manages users and products. Every
// mutation is followed by a full re-fetch regardless of the per-call
// outcome, so the screen always reflects the backend.
type AdminView struct {
	gateway  AdminGateway
	prompter Prompter
	logger   core.Logger
	out      io.Writer

	users    []client.User
	products []client.Product
	orders   []client.Order
	summary  []client.SalesRow
}

// NewAdminView creates the admin dashboard.
func NewAdminView(gateway AdminGateway, prompter Prompter, logger core.Logger, out io.Writer) *AdminView {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &AdminView{gateway: gateway, prompter: prompter, logger: logger, out: out}
}

// Refresh pulls every collection the panel shows.
func (v *AdminView) Refresh(ctx context.Context) {
	v.users = v.gateway.ListUsers(ctx)
	v.products = v.gateway.ListProducts(ctx)
	v.orders = v.gateway.ListOrders(ctx)
	v.summary = v.gateway.SalesSummary(ctx)
}

// TotalCollected sums the revenue column of the sales summary.
func (v *AdminView) TotalCollected() float64 {
	var total float64
	for _, r := range v.summary {
		total += r.TotalCollected
	}
	return total
}

// TotalItemsSold sums the quantity column of the sales summary.
func (v *AdminView) TotalItemsSold() float64 {
	var total float64
	for _, r := range v.summary {
		total += r.QuantitySold
	}
	return total
}

// Render prints orders, stats, users, products and the sales summary.
func (v *AdminView) Render() {
	fmt.Fprintf(v.out, "\n👔 Panel del Administrador\n")
	fmt.Fprintf(v.out, "Ventas totales: $%.2f — Productos vendidos: %.0f\n\n", v.TotalCollected(), v.TotalItemsSold())

	fmt.Fprintln(v.out, "Pedidos")
	w := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMESA\tESTADO\tTOTAL")
	for _, o := range v.orders {
		fmt.Fprintf(w, "%s\t%d\t%s\t$%.2f\n", o.ID, o.Table, StatusLabel(o.Status), o.Total)
	}
	w.Flush()

	fmt.Fprintln(v.out, "\nUsuarios")
	w = tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tROL")
	for _, u := range v.users {
		fmt.Fprintf(w, "%s\t%s\t%s\n", u.ID, u.Name, u.Role)
	}
	w.Flush()

	fmt.Fprintln(v.out, "\nProductos")
	w = tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tPRECIO")
	for _, p := range v.products {
		fmt.Fprintf(w, "%s\t%s\t$%.2f\n", p.ID, p.Name, p.Price)
	}
	w.Flush()

	fmt.Fprintln(v.out, "\nResumen de Ventas")
	w = tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MESERO\tPRODUCTO\tCANTIDAD\tRECAUDADO")
	for _, r := range v.summary {
		fmt.Fprintf(w, "%s\t%s\t%.0f\t$%.2f\n", r.WaiterName, r.ProductName, r.QuantitySold, r.TotalCollected)
	}
	w.Flush()
}

// EditUser collects a structured patch and dispatches it. The patch is
// validated before any network call; an invalid patch never leaves the
// client.
func (v *AdminView) EditUser(ctx context.Context, id string) error {
	role, err := v.prompter.Ask("Nuevo rol (administrador, mesero, cocina):")
	if err != nil {
		return err
	}
	if role == "" {
		return nil
	}
	password, err := v.prompter.Ask("Nueva clave (dejar vacío para no cambiar):")
	if err != nil {
		return err
	}

	patch := client.UserPatch{Role: core.Role(role), Password: password}
	if err := patch.Validate(); err != nil {
		fmt.Fprintf(v.out, "Error: %v\n", err)
		return nil
	}
	if err := v.gateway.UpdateUser(ctx, id, patch); err != nil {
		fmt.Fprintf(v.out, "Error: %v\n", err)
	}
	v.Refresh(ctx)
	return nil
}

// DeleteUser removes a user after confirmation, then re-fetches.
func (v *AdminView) DeleteUser(ctx context.Context, id string) error {
	confirmed, err := v.prompter.Confirm("¿Eliminar usuario? Esta acción no se puede deshacer.")
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}
	if err := v.gateway.DeleteUser(ctx, id); err != nil {
		fmt.Fprintf(v.out, "Error: %v\n", err)
	}
	v.Refresh(ctx)
	return nil
}

// EditProduct collects a validated name/price patch and dispatches it.
func (v *AdminView) EditProduct(ctx context.Context, id string) error {
	name, err := v.prompter.Ask("Nuevo nombre del producto:")
	if err != nil {
		return err
	}
	if name == "" {
		return nil
	}
	priceStr, err := v.prompter.Ask("Nuevo precio:")
	if err != nil {
		return err
	}
	price, convErr := strconv.ParseFloat(priceStr, 64)
	if convErr != nil {
		fmt.Fprintln(v.out, "Precio inválido")
		return nil
	}

	patch := client.ProductPatch{Name: name, Price: price}
	if err := patch.Validate(); err != nil {
		fmt.Fprintf(v.out, "Error: %v\n", err)
		return nil
	}
	if err := v.gateway.UpdateProduct(ctx, id, patch); err != nil {
		fmt.Fprintf(v.out, "Error: %v\n", err)
	}
	v.Refresh(ctx)
	return nil
}

// DeleteProduct removes a product after confirmation, then re-fetches.
func (v *AdminView) DeleteProduct(ctx context.Context, id string) error {
	confirmed, err := v.prompter.Confirm("¿Eliminar producto?")
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}
	if err := v.gateway.DeleteProduct(ctx, id); err != nil {
		fmt.Fprintf(v.out, "Error: %v\n", err)
	}
	v.Refresh(ctx)
	return nil
}

// Run drives the interactive loop until the user quits.
func (v *AdminView) Run(ctx context.Context) error {
	v.Refresh(ctx)
	for {
		v.Render()
		choice, err := v.prompter.Ask("\n[eu] editar usuario  [du] eliminar usuario  [ep] editar producto  [dp] eliminar producto  [r] refrescar  [q] salir:")
		if err != nil {
			return err
		}
		action := strings.ToLower(choice)
		if action == "q" {
			return nil
		}
		if action == "r" {
			v.Refresh(ctx)
			continue
		}

		handler := map[string]func(context.Context, string) error{
			"eu": v.EditUser,
			"du": v.DeleteUser,
			"ep": v.EditProduct,
			"dp": v.DeleteProduct,
		}[action]
		if handler == nil {
			continue
		}

		id, err := v.prompter.Ask("ID:")
		if err != nil {
			return err
		}
		if id == "" {
			continue
		}
		if err := handler(ctx, id); err != nil {
			return err
		}
	}
}
