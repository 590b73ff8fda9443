package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LUMNISEDUCACIONAL/leadhunter/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "leadhunter",
	Short: "Search-grounded business lead prospecting",
	Long:  "Describes a market niche and location to a search-grounded AI backend and extracts structured business contacts from its response.",
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

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
