package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/99minutos/admin-console/internal/api"
	"github.com/99minutos/admin-console/internal/api/handler"
	"github.com/99minutos/admin-console/internal/core/ports"
	"github.com/99minutos/admin-console/internal/core/service"
	"github.com/99minutos/admin-console/internal/core/store"
	"github.com/99minutos/admin-console/internal/core/validation"
	mongodb "github.com/99minutos/admin-console/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/admin-console/internal/infrastructure/db/redis"
	"github.com/99minutos/admin-console/internal/infrastructure/queue"
	"github.com/99minutos/admin-console/internal/infrastructure/remoteapi"
	"github.com/99minutos/admin-console/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd(opts *options) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				opts.cfg.Port = port
			}
			return serve(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (default: $PORT)")
	return cmd
}

func serve(parent context.Context, opts *options) error {
	cfg := opts.cfg
	log := logger.For("server")

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Redis: sessions and the registration in-flight guard ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	checks := map[string]handler.Check{
		"redis": redisdb.Check(rdb),
	}

	// --- Mongo: edit audit trail, optional ---
	var audit ports.AuditSink = queue.NopSink{}
	var dispatcher *queue.AuditDispatcher
	if cfg.Mongo.URI != "" {
		conn, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = conn.Close(context.WithoutCancel(ctx)) }()

		repo := mongodb.NewAuditRepository(conn.Database())
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("audit indexes not created")
		}
		dispatcher = queue.NewAuditDispatcher(cfg.Mongo.Workers, repo, logger.For("audit"))
		dispatcher.Start(ctx)
		audit = dispatcher
		checks["mongodb"] = conn.Ping
	} else {
		log.Info().Msg("MONGO_URI not set, edit audit disabled")
	}

	// --- Core ---
	remote := remoteapi.New(cfg.API.BaseURL, remoteapi.WithTimeout(cfg.API.Timeout))
	checks["remote_api"] = remote.Ping

	secret := cfg.Session.Secret
	if secret == "" {
		secret = uuid.NewString()
		log.Warn().Msg("SESSION_SECRET not set, sessions will not survive a restart")
	}

	v := validation.New()
	st := store.New(remote, logger.For("store"))
	router, err := api.NewRouter(api.Deps{
		Auth:         service.NewAuthService(remote, redisdb.NewSessionRepository(rdb), v, secret, cfg.Session.TTL, logger.For("auth")),
		Registration: service.NewRegistrationService(remote, redisdb.NewSubmissionGuard(rdb), st, v, logger.For("registration")),
		Reference:    service.NewReferenceService(remote),
		Users:        service.NewUserService(st, audit, v, logger.For("users")),
		Store:        st,
		Validator:    v,
		Checks:       checks,
		Log:          logger.For("http"),
		PageSize:     cfg.PageSize,
		SessionTTL:   cfg.Session.TTL,
		SecureCookie: !cfg.IsDevelopment(),
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("api", remote.BaseURL()).Msg("admin console listening")
		if err := router.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := router.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	stop()
	if dispatcher != nil {
		dispatcher.Wait()
	}
	return nil
}
