package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/tpp-registry/internal/registry"
	"github.com/Simplici0/tpp-registry/internal/report"
)

func newExportCmd() *cobra.Command {
	var (
		domainName string
		expert     string
		month      string
		firms      bool
		out        string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the registry or the firm directory of a domain to an XLSX file",
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, err := registry.ParseDomain(domainName)
			if err != nil {
				return err
			}
			if month != "" {
				if err := registry.ValidateMonth(month); err != nil {
					return err
				}
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			data, err := a.service.Data(cmd.Context(), domain)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if firms {
				err = report.FirmsWorkbook(f, data.Firms)
			} else {
				records := registry.FilterRecords(data.Records, expert, month)
				err = report.RecordsWorkbook(f, domain, data.Tariffs(domain).Price(records))
			}
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				return err
			}

			a.logger.Info("export written", zap.String("domain", string(domain)), zap.String("file", out))
			return nil
		},
	}

	cmd.Flags().StringVar(&domainName, "domain", string(registry.Conclusions), "conclusions or certificates")
	cmd.Flags().StringVar(&expert, "expert", "all", "expert name, or all")
	cmd.Flags().StringVar(&month, "month", "", "YYYY-MM month of the end date")
	cmd.Flags().BoolVar(&firms, "firms", false, "export the firm directory instead of records")
	cmd.Flags().StringVarP(&out, "out", "o", "registry.xlsx", "output file")
	return cmd
}
