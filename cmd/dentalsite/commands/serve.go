package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dentalsite/internal/bot"
	"dentalsite/internal/bot/state_manager"
	"dentalsite/internal/calculator"
	"dentalsite/internal/catalog"
	"dentalsite/internal/forms"
	"dentalsite/internal/http/handlers"
	"dentalsite/internal/http/routes"
	"dentalsite/internal/notify"
	"dentalsite/internal/ratelimit"
	"dentalsite/internal/storage"
)

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and, when enabled, the Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return runServe(ctx, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func runServe(ctx context.Context, migrate bool) error {
	redisClient, redisStorage, err := openRedis(ctx)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	pgStorage, err := openPostgres(ctx, redisStorage)
	if err != nil {
		return err
	}
	defer pgStorage.Close()

	if migrate {
		if err := storage.RunMigrations(ctx, pgStorage.DB().DB, log); err != nil {
			return err
		}
	}

	var notifier forms.Notifier = notify.NewLogNotifier(log)
	var botAPI *tgbotapi.BotAPI
	if cfg.Telegram.Enabled {
		botAPI, err = bot.NewBotAPI(cfg.Telegram.Token, cfg.IsDevelopment(), log)
		if err != nil {
			return err
		}
		notifier = notify.NewTelegramNotifier(botAPI, cfg.Telegram.AdminIDs, log)
	}

	limiter := ratelimit.New(redisStorage, int64(cfg.RateLimit.Limit), cfg.RateLimit.Window)
	formsService := forms.NewService(pgStorage, notifier, limiter, log)
	serviceCatalog := catalog.New(pgStorage, log)
	resolver := calculator.DefaultResolver()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := routes.NewRouter(routes.Dependencies{
		Catalog: handlers.NewCatalogHandler(serviceCatalog, cfg.DefaultLocale),
		Quote:   handlers.NewQuoteHandler(resolver, cfg.CurrencyUnit(), cfg.DefaultLocale),
		Wizard: handlers.NewWizardHandler(handlers.WizardHandlerConfig{
			Catalog:       serviceCatalog,
			Resolver:      resolver,
			Store:         redisStorage,
			Forms:         formsService,
			Currency:      cfg.CurrencyUnit(),
			DefaultLocale: cfg.DefaultLocale,
			Logger:        log,
		}),
		Forms: handlers.NewFormsHandler(formsService, cfg.DefaultLocale, log).WithInternalToken(cfg.HTTP.InternalToken),
		Health: map[string]routes.HealthChecker{
			"postgres": pgStorage.DB().PingContext,
			"redis":    redisClient.Ping,
		},
		TrustedProxies: cfg.HTTP.TrustedProxies,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	if botAPI != nil {
		tgBot := bot.New(
			botAPI,
			serviceCatalog,
			state_manager.New(redisStorage),
			func(chatID int64) calculator.EstimateSink {
				return forms.ClientSink{Submitter: formsService, ClientID: bot.ClientID(chatID)}
			},
			pgStorage,
			bot.Config{
				AdminIDs:      cfg.Telegram.AdminIDs,
				Currency:      cfg.CurrencyUnit(),
				DefaultLocale: cfg.DefaultLocale,
				IdleTimeout:   cfg.Telegram.IdleTimeout,
			},
			log,
		)
		go func() {
			if err := tgBot.Start(ctx); err != nil {
				errCh <- fmt.Errorf("telegram bot: %w", err)
			}
		}()
	}

	return waitAndShutdown(ctx, srv, errCh)
}

func waitAndShutdown(ctx context.Context, srv *http.Server, errCh <-chan error) error {
	var runErr error
	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	case runErr = <-errCh:
		log.Error("Server stopped with error", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	log.Info("Server shutdown gracefully")
	return runErr
}
