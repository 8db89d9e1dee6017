package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored data",
	}
	cmd.AddCommand(exportLeadsCmd())
	return cmd
}

func exportLeadsCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Write all leads to an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = fmt.Sprintf("leads_%s.xlsx", time.Now().Format("20060102"))
			}

			ctx := cmd.Context()
			pgStorage, err := openPostgres(ctx, nil)
			if err != nil {
				return err
			}
			defer pgStorage.Close()

			if err := pgStorage.ExportLeadsToExcel(ctx, out); err != nil {
				return err
			}
			log.Info("Leads exported", zap.String("path", out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default leads_<date>.xlsx)")
	return cmd
}
