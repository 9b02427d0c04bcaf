package views

import (
	"context"
	"fmt"
	"io"

	"github.com/comanda-io/comanda/client"
	"github.com/comanda-io/comanda/core"
	"github.com/comanda-io/comanda/session"
)

// Authenticator is the slice of the client the login flow needs.
type Authenticator interface {
	Authenticate(ctx context.Context, creds client.Credentials) (string, core.Role, error)
}

// LoginView collects credentials, authenticates and establishes the session.
type LoginView struct {
	gateway  Authenticator
	store    session.Store
	prompter Prompter
	logger   core.Logger
	out      io.Writer
}

// NewLoginView creates the login flow.
func NewLoginView(gateway Authenticator, store session.Store, prompter Prompter, logger core.Logger, out io.Writer) *LoginView {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &LoginView{gateway: gateway, store: store, prompter: prompter, logger: logger, out: out}
}

// Run prompts for password and role, authenticates, and persists the
// session. The absence of a token in the response means invalid
// credentials; no session is established and the user is told so.
func (v *LoginView) Run(ctx context.Context) (session.Session, error) {
	password, err := v.prompter.Ask("Contraseña:")
	if err != nil {
		return session.Session{}, err
	}
	role, err := v.prompter.Ask("Rol (administrador, mesero, cocina):")
	if err != nil {
		return session.Session{}, err
	}

	token, grantedRole, err := v.gateway.Authenticate(ctx, client.Credentials{
		Password: password,
		Role:     role,
	})
	if err != nil {
		return session.Session{}, err
	}
	if token == "" {
		fmt.Fprintln(v.out, "Credenciales inválidas")
		return session.Session{}, core.ErrInvalidCredentials
	}

	s := session.Session{Token: token, Role: grantedRole}
	if err := v.store.Establish(ctx, s); err != nil {
		return session.Session{}, fmt.Errorf("persisting session: %w", err)
	}

	v.logger.Info("Login succeeded", map[string]interface{}{
		"operation": "login",
		"role":      string(grantedRole),
	})
	fmt.Fprintf(v.out, "Sesión iniciada como %s. Ejecuta: comanda %s\n", grantedRole, commandFor(grantedRole))
	return s, nil
}

// commandFor maps a role to its dashboard subcommand.
func commandFor(role core.Role) string {
	switch role {
	case core.RoleAdmin:
		return "admin"
	case core.RoleWaiter:
		return "mesero"
	case core.RoleKitchen:
		return "cocina"
	}
	return "login"
}
