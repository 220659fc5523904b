package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Simplici0/tpp-registry/internal/registry"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <db.json>",
		Short: "Replace all stored data with a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := readAppData(args[0])
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			return a.service.ReplaceAppData(cmd.Context(), app)
		},
	}
}

func readAppData(path string) (registry.AppData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return registry.AppData{}, fmt.Errorf("read %s: %w", path, err)
	}
	var app registry.AppData
	if err := json.Unmarshal(raw, &app); err != nil {
		return registry.AppData{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return app, nil
}
