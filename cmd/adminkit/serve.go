package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-adminkit/internal/demo"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var (
		addr    string
		sources formSources
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the students admin",
		Long: `Start the students admin: a sortable roster with an add-student modal,
an invite form and CSV export.

Forms from ADMINKIT_SCHEMAS_DIR or --openapi are listed under the Forms tab.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = a.cfg.Addr
			}
			return a.serve(cmd.Context(), addr, sources)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (defaults to ADMINKIT_ADDR)")
	sources.register(cmd, false)
	return cmd
}

func (a *app) serve(ctx context.Context, addr string, sources formSources) error {
	forms, err := a.loadForms(ctx, sources)
	if err != nil {
		return err
	}
	renderer, err := demo.NewRenderer(a.cfg, a.logger)
	if err != nil {
		return err
	}
	srv, err := demo.NewServer(demo.Options{
		Store:      demo.NewStore(demo.SeedStudents(time.Now())...),
		Renderer:   renderer,
		Forms:      forms,
		Downloads:  a.cfg.ClientDownloads,
		CSRFSecure: a.cfg.CSRFSecure,
		Logger:     a.logger,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", addr).Str("theme", a.cfg.Theme).Msg("admin listening")
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve: shutdown: %w", err)
	}
	return nil
}
