package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Simplici0/tpp-registry/internal/migrations"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or inspect database migrations",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}

			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			switch direction {
			case "up":
				err = migrations.Up(ctx, a.db, a.cfg.DBDriver)
			case "down":
				err = migrations.Down(ctx, a.db, a.cfg.DBDriver)
			case "status":
				err = migrations.Status(ctx, a.db, a.cfg.DBDriver)
			default:
				return fmt.Errorf("unknown migrate direction %q", direction)
			}
			if err != nil {
				return err
			}
			a.logger.Info("migrations done")
			return nil
		},
	}
}
