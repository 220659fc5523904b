package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Simplici0/tpp-registry/internal/pricing"
	"github.com/Simplici0/tpp-registry/internal/registry"
)

// costView is the cost breakdown as served to clients.
type costView struct {
	SumWithoutDiscount        float64 `json:"sumWithoutDiscount"`
	SumWithDiscount           float64 `json:"sumWithDiscount"`
	ModelCost                 float64 `json:"modelCost"`
	CodeCost                  float64 `json:"codeCostValue"`
	ComplexityCost            float64 `json:"complexityCost"`
	UrgencyCost               float64 `json:"urgencyCost"`
	PageCost                  float64 `json:"pageCost"`
	DiscountMultiplier        float64 `json:"discountMultiplier"`
	MainCertCost              float64 `json:"mainCertCost"`
	PositionsCost             float64 `json:"positionsCost"`
	AdditionalPagesCost       float64 `json:"additionalPagesCost"`
	UrgentMainCertCost        float64 `json:"urgentMainCertCost"`
	UrgentPositionsCost       float64 `json:"urgentPositionsCost"`
	UrgentAdditionalPagesCost float64 `json:"urgentAdditionalPagesCost"`
	UrgencyMultiplier         float64 `json:"urgencyMultiplier"`
}

func newCostView(res pricing.Result) costView {
	return costView{
		SumWithoutDiscount:        res.Totals.WithoutDiscount,
		SumWithDiscount:           res.Totals.WithDiscount,
		ModelCost:                 res.Conclusion.ModelCost,
		CodeCost:                  res.Conclusion.CodeCost,
		ComplexityCost:            res.Conclusion.ComplexityCost,
		UrgencyCost:               res.Conclusion.UrgencyCost,
		PageCost:                  res.Conclusion.PageCost,
		DiscountMultiplier:        res.Conclusion.DiscountMultiplier,
		MainCertCost:              res.Certificate.MainCertCost,
		PositionsCost:             res.Certificate.PositionsCost,
		AdditionalPagesCost:       res.Certificate.AdditionalPagesCost,
		UrgentMainCertCost:        res.Certificate.UrgentMainCertCost,
		UrgentPositionsCost:       res.Certificate.UrgentPositionsCost,
		UrgentAdditionalPagesCost: res.Certificate.UrgentAdditionalPagesCost,
		UrgencyMultiplier:         res.Certificate.UrgencyMultiplier,
	}
}

func newCostCmd() *cobra.Command {
	var (
		domainName string
		recordPath string
	)

	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Price a record with the stored tariffs of a domain",
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, err := registry.ParseDomain(domainName)
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(recordPath)
			if err != nil {
				return fmt.Errorf("read record: %w", err)
			}
			var record registry.Record
			if err := json.Unmarshal(raw, &record); err != nil {
				return fmt.Errorf("decode record: %w", err)
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

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(newCostView(data.Tariffs(domain).Cost(record)))
		},
	}

	cmd.Flags().StringVar(&domainName, "domain", string(registry.Conclusions), "conclusions or certificates")
	cmd.Flags().StringVar(&recordPath, "record", "", "path to a record JSON file")
	_ = cmd.MarkFlagRequired("record")
	return cmd
}
