package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/adreport/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "adreport",
	Short: "Campaign dataset analysis and reporting",
	Long:  "Loads a static advertising-campaign dataset (CSV/XLSX), validates it, aggregates performance metrics along arbitrary dimensions, and exports dashboard-ready tables.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// outputPath resolves a relative output path against the configured output
// directory.
func outputPath(p string) string {
	if p == "" || filepath.IsAbs(p) || cfg.Report.OutputDir == "" || cfg.Report.OutputDir == "." {
		return p
	}
	return filepath.Join(cfg.Report.OutputDir, p)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
