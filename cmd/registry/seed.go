package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/tpp-registry/internal/seed"
)

func newSeedCmd() *cobra.Command {
	var tariffsFile string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the admin account and default tariffs",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			stats, err := seed.Run(cmd.Context(), a.users, a.service, a.seedConfig(tariffsFile), a.logger)
			if err != nil {
				return err
			}
			a.logger.Info("seed finished", zap.Int("inserts", stats.Inserts))
			return nil
		},
	}

	cmd.Flags().StringVar(&tariffsFile, "file", "", "YAML tariffs file replacing the built-in defaults")
	return cmd
}

func (a *app) seedConfig(tariffsFile string) seed.Config {
	return seed.Config{
		AdminLogin:    a.cfg.AdminLogin,
		AdminPassword: a.cfg.AdminPassword,
		AdminFullName: a.cfg.AdminFullName,
		TariffsFile:   tariffsFile,
	}
}
