package commands

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dentalsite/internal/bot"
	"dentalsite/internal/bot/state_manager"
	"dentalsite/internal/calculator"
	"dentalsite/internal/catalog"
	"dentalsite/pkg/api"
)

// botCmd runs the Telegram wizard on its own, talking to a deployed
// HTTP API instead of the database.
func botCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot against a remote API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.APIBaseURL == "" {
				return errors.New("API_BASE_URL is required for the standalone bot")
			}
			if cfg.Telegram.Token == "" {
				return errors.New("TELEGRAM_TOKEN is required for the standalone bot")
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			redisClient, redisStorage, err := openRedis(ctx)
			if err != nil {
				return err
			}
			defer redisClient.Close()

			botAPI, err := bot.NewBotAPI(cfg.Telegram.Token, cfg.IsDevelopment(), log)
			if err != nil {
				return err
			}

			if cfg.HTTP.InternalToken == "" {
				log.Warn("HTTP_INTERNAL_TOKEN is not set, all chats share the bot host's rate limit")
			}
			apiClient := api.NewClient(cfg.APIBaseURL, cfg.HTTP.RequestTimeout, log).
				WithInternalToken(cfg.HTTP.InternalToken)
			tgBot := bot.New(
				botAPI,
				catalog.New(apiClient, log),
				state_manager.New(redisStorage),
				func(chatID int64) calculator.EstimateSink {
					return apiClient.ForClient(bot.ClientID(chatID))
				},
				nil,
				bot.Config{
					AdminIDs:      cfg.Telegram.AdminIDs,
					Currency:      cfg.CurrencyUnit(),
					DefaultLocale: cfg.DefaultLocale,
					IdleTimeout:   cfg.Telegram.IdleTimeout,
				},
				log,
			)

			if err := tgBot.Start(ctx); err != nil {
				log.Error("Bot stopped with error", zap.Error(err))
				return err
			}

			log.Info("Bot shutdown gracefully")
			return nil
		},
	}
}
