// Package cli is the command-line surface of the store rating client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"

	"github.com/roxiler/storerating-client/internal/api"
	"github.com/roxiler/storerating-client/internal/core/domain"
	"github.com/roxiler/storerating-client/internal/core/ports"
	"github.com/roxiler/storerating-client/internal/core/service"
	"github.com/roxiler/storerating-client/internal/forms"
	"github.com/roxiler/storerating-client/internal/infrastructure/storage/file"
	"github.com/roxiler/storerating-client/internal/infrastructure/storage/memory"
	redisstore "github.com/roxiler/storerating-client/internal/infrastructure/storage/redis"
	"github.com/roxiler/storerating-client/internal/pkg/config"
	"github.com/roxiler/storerating-client/pkg/logger"
)

// Options are the process-level inputs of the CLI. Zero values fall back to
// the real process environment and standard streams.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Lookuper overrides the environment the configuration is read from.
	Lookuper envconfig.Lookuper
	// HTTPClient overrides the transport used by the gateway.
	HTTPClient *http.Client
	// Storage overrides SESSION_BACKEND.
	Storage ports.SessionStorage
}

// app holds everything a command needs. It is built once per invocation in
// the root command's PersistentPreRunE.
type app struct {
	opts Options
	cfg  *config.Config
	log  zerolog.Logger

	closers []func() error

	session *service.SessionService
	gateway *api.Gateway
	auth    *service.AuthService
	admin   *service.AdminService
	owner   *service.OwnerService
	board   *service.StoreBoard
	ratings *service.RatingService
}

func (o Options) withDefaults() Options {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Lookuper == nil {
		o.Lookuper = envconfig.OsLookuper()
	}
	return o
}

func (a *app) init(ctx context.Context) error {
	cfg, err := config.LoadFrom(ctx, a.opts.Lookuper)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Output: a.opts.Stderr})

	storage, err := a.openStorage(ctx)
	if err != nil {
		return err
	}

	a.session = service.NewSessionService(storage, a.log)
	a.session.Subscribe(func(s domain.Session) {
		ev := a.log.Debug().Bool("active", s.Active())
		if s.User != nil {
			ev = ev.Int64("user_id", s.User.ID).Str("role", string(s.User.Role))
		}
		ev.Msg("session changed")
	})
	a.session.Restore(ctx)

	a.gateway, err = api.NewGateway(api.Options{
		BaseURL:    cfg.APIURL,
		Timeout:    cfg.Timeout,
		HTTPClient: a.opts.HTTPClient,
	}, a.session, a.log)
	if err != nil {
		return err
	}

	validate := forms.NewValidator()
	userAPI := api.NewUserClient(a.gateway)
	a.auth = service.NewAuthService(api.NewAuthClient(a.gateway), a.session, validate, a.log)
	a.admin = service.NewAdminService(api.NewAdminClient(a.gateway), validate, a.log)
	a.owner = service.NewOwnerService(api.NewOwnerClient(a.gateway))
	a.board = service.NewStoreBoard(userAPI, a.log)
	a.ratings = service.NewRatingService(userAPI, a.board, a.log)
	return nil
}

func (a *app) openStorage(ctx context.Context) (ports.SessionStorage, error) {
	if a.opts.Storage != nil {
		return a.opts.Storage, nil
	}
	switch a.cfg.Session.Backend {
	case config.BackendMemory:
		return memory.NewSessionStorage(), nil
	case config.BackendRedis:
		s, err := redisstore.Open(ctx, redisstore.Config{
			Addr:     a.cfg.Redis.Addr,
			DB:       a.cfg.Redis.DB,
			Password: a.cfg.Redis.Password,
			Prefix:   a.cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("session storage: %w", err)
		}
		a.closers = append(a.closers, s.Close)
		return s, nil
	default:
		return file.NewSessionStorage(a.cfg.Session.File), nil
	}
}

// close releases resources and writes the metrics textfile when configured.
func (a *app) close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	if a.cfg != nil && a.cfg.MetricsTextfile != "" {
		if err := prometheus.WriteToTextfile(a.cfg.MetricsTextfile, prometheus.DefaultGatherer); err != nil {
			errs = append(errs, fmt.Errorf("write metrics textfile: %w", err))
		}
	}
	return errors.Join(errs...)
}

// require resolves route for the current user through the navigation guard
// and fails unless the user may stay there.
func (a *app) require(route domain.Route) (*domain.User, error) {
	user := a.session.CurrentUser()
	if got := domain.Guard(user, route); got != route {
		if user == nil {
			return nil, &routeError{want: route, got: got}
		}
		return nil, &routeError{want: route, got: got, role: user.Role}
	}
	return user, nil
}

// routeError is returned when the guard sends the user elsewhere.
type routeError struct {
	want, got domain.Route
	role      domain.Role
}

func (e *routeError) Error() string {
	if e.role == "" {
		return fmt.Sprintf("not signed in: continue at %s", e.got)
	}
	return fmt.Sprintf("%s is not available to %s accounts: continue at %s", e.want, e.role, e.got)
}
