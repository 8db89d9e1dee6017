package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dentalsite/internal/config"
	"dentalsite/pkg/logger"
)

var (
	cfg *config.Config
	log *zap.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:           "dentalsite",
		Short:         "Dental clinic price calculator service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			log, err = logger.New(cfg.Env)
			if err != nil {
				return fmt.Errorf("failed to init logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
	}

	root.AddCommand(serveCmd(), botCmd(), migrateCmd(), exportCmd())

	if err := root.Execute(); err != nil {
		if log != nil {
			log.Error("Command failed", zap.String("command", root.Name()), zap.Error(err))
		} else {
			fmt.Fprintln(root.ErrOrStderr(), err)
		}
		return err
	}
	return nil
}
