package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.toml"

func main() {
	var configPath string

	root := &cobra.Command{
		Use:           "cleaning-service",
		Short:         "Cleaning bookings scheduling and pricing service",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Без подкоманды запускаем HTTP сервер
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to TOML config")

	root.AddCommand(newServeCommand(&configPath), newMigrateCommand(&configPath))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
