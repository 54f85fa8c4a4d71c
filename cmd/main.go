package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.toml"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "appointment-service",
		Short:         "Запись автомобилей в мастерские и подбор свободных слотов",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Без подкоманды запускаем сервер
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath, false)
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "путь к файлу конфигурации")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newMigrateCmd(&configPath))

	return root
}
