// Command fakeapi serves the in-memory store rating backend for local use.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roxiler/storerating-client/internal/core/domain"
	"github.com/roxiler/storerating-client/internal/fakeapi"
	"github.com/roxiler/storerating-client/pkg/logger"
)

func main() {
	var (
		addr, prefix, secret string
		adminEmail, adminPwd string
		level                string
	)
	cmd := &cobra.Command{
		Use:          "fakeapi",
		Short:        "Serve an in-memory store rating backend",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logger.Init(logger.Options{Level: level, Pretty: true})

			srv := fakeapi.New(fakeapi.Options{Secret: secret, Prefix: prefix, Logger: log})
			if _, err := srv.SeedUser(domain.NewUser{
				Name:     "System Administrator Account",
				Email:    adminEmail,
				Password: adminPwd,
				Role:     domain.RoleAdmin,
			}); err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start(addr) }()
			log.Info().Str("addr", addr).Str("prefix", prefix).Str("admin", adminEmail).Msg("fake backend listening")

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}
	f := cmd.Flags()
	f.StringVar(&addr, "addr", ":5000", "listen address")
	f.StringVar(&prefix, "prefix", "/api", "path prefix of every route")
	f.StringVar(&secret, "secret", "fakeapi-secret", "token signing secret")
	f.StringVar(&adminEmail, "admin-email", "admin@roxiler.com", "email of the seeded admin")
	f.StringVar(&adminPwd, "admin-password", "Admin@123", "password of the seeded admin")
	f.StringVar(&level, "log-level", "info", "log level")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
