package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/comanda-io/comanda/client"
	"github.com/comanda-io/comanda/core"
	"github.com/comanda-io/comanda/session"
	"github.com/comanda-io/comanda/telemetry"
	"github.com/comanda-io/comanda/views"
)

// app wires the pieces every subcommand needs.
type app struct {
	cfg      *core.Config
	logger   core.Logger
	store    session.Store
	guard    *session.Guard
	api      *client.Client
	shutdown func(context.Context) error
}

func newApp(ctx context.Context, configFile, apiURL string) (*app, error) {
	opts := []core.Option{}
	if configFile != "" {
		opts = append(opts, core.WithConfigFile(configFile))
	}
	if apiURL != "" {
		opts = append(opts, core.WithAPIURL(apiURL))
	}
	cfg, err := core.NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	logger := core.NewProductionLogger("comanda", cfg.Logging.Level, cfg.Logging.Format)

	var store session.Store
	if cfg.Session.RedisURL != "" {
		store, err = session.NewRedisStore(cfg.Session.RedisURL, cfg.Session.TTL, logger)
		if err != nil {
			return nil, err
		}
	} else {
		store = session.NewFileStore(cfg.Session.File, logger)
	}

	shutdown, err := telemetry.Init(ctx, "comanda", cfg.Telemetry)
	if err != nil {
		return nil, err
	}

	tokens := client.TokenFunc(func(ctx context.Context) (string, error) {
		s, err := store.Load(ctx)
		if err != nil {
			return "", err
		}
		return s.Token, nil
	})

	api := client.New(cfg.API.BaseURL, tokens, logger)
	api.HTTPClient = &http.Client{
		Timeout:   cfg.API.Timeout,
		Transport: telemetry.NewTransport(nil),
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		guard:    session.NewGuard(store, logger),
		api:      api,
		shutdown: shutdown,
	}, nil
}

func (a *app) close(ctx context.Context) {
	if a.shutdown != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = a.shutdown(shutdownCtx)
	}
	if closer, ok := a.store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}

func newRootCmd() *cobra.Command {
	var configFile string
	var apiURL string

	root := &cobra.Command{
		Use:           "comanda",
		Short:         "Terminal client for the restaurant order API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to config.yaml")
	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "backend base URL")

	// runDashboard gates a role-specific view behind the session guard. A
	// missing or mismatched session routes back to login without a single
	// API call.
	runDashboard := func(required core.Role, start func(a *app, ctx context.Context) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, configFile, apiURL)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			if _, err := a.guard.Authorize(ctx, required); err != nil {
				if core.IsAuthError(err) {
					fmt.Fprintln(cmd.OutOrStdout(), "Acceso denegado. Ejecuta: comanda login")
				}
				return err
			}
			return start(a, ctx)
		}
	}

	root.AddCommand(&cobra.Command{
		Use:   "login",
		Short: "Authenticate and establish a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, configFile, apiURL)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			prompter := views.NewStdPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			login := views.NewLoginView(a.api, a.store, prompter, a.logger, cmd.OutOrStdout())
			_, err = login.Run(ctx)
			if errors.Is(err, core.ErrInvalidCredentials) {
				// Already reported to the user.
				a.close(ctx)
				os.Exit(1)
			}
			return err
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, configFile, apiURL)
			if err != nil {
				return err
			}
			defer a.close(ctx)
			if err := a.guard.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sesión cerrada")
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "admin",
		Short: "Administrator dashboard",
		RunE: runDashboard(core.RoleAdmin, func(a *app, ctx context.Context) error {
			prompter := views.NewStdPrompter(os.Stdin, os.Stdout)
			return views.NewAdminView(a.api, prompter, a.logger, os.Stdout).Run(ctx)
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "mesero",
		Short: "Waiter dashboard",
		RunE: runDashboard(core.RoleWaiter, func(a *app, ctx context.Context) error {
			prompter := views.NewStdPrompter(os.Stdin, os.Stdout)
			return views.NewWaiterView(a.api, prompter, a.logger, os.Stdout).Run(ctx)
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "cocina",
		Short: "Kitchen dashboard",
		RunE: runDashboard(core.RoleKitchen, func(a *app, ctx context.Context) error {
			prompter := views.NewStdPrompter(os.Stdin, os.Stdout)
			return views.NewKitchenView(a.api, prompter, a.logger, os.Stdout).Run(ctx)
		}),
	})

	return root
}
