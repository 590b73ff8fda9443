package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config.yaml with the current effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat("config.yaml"); err == nil && !configForce {
			return eris.New("config.yaml already exists (use --force to overwrite)")
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return eris.Wrap(err, "marshal config")
		}

		if err := os.WriteFile("config.yaml", out, 0o644); err != nil {
			return eris.Wrap(err, "write config.yaml")
		}

		cmd.Println("wrote config.yaml")
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config.yaml")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
