package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Simplici0/tpp-registry/internal/registry"
	"github.com/Simplici0/tpp-registry/internal/users"
)

//go:embed defaults.yaml
var defaultTariffs []byte

var errAlreadySeeded = errors.New("domain already has data")

// Config contains the values required by startup seed.
type Config struct {
	AdminLogin    string
	AdminPassword string
	AdminFullName string
	// TariffsFile replaces the embedded default tariffs when set.
	TariffsFile string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// TierRow is a conclusion tariff row.
type TierRow struct {
	Models int     `yaml:"models"`
	UpTo10 float64 `yaml:"up_to_10"`
	UpTo20 float64 `yaml:"up_to_20"`
	UpTo50 float64 `yaml:"up_to_50"`
	Plus51 float64 `yaml:"plus_51"`
}

// PageBands are the certificate prices of one production type.
type PageBands struct {
	UpTo20Pages        float64 `yaml:"up_to_20_pages"`
	From21To200Pages   float64 `yaml:"from_21_to_200_pages"`
	Plus201Pages       float64 `yaml:"plus_201_pages"`
	AdditionalPosition float64 `yaml:"additional_position"`
}

// Tariffs is the tariffs file layout.
type Tariffs struct {
	Conclusions struct {
		Settings struct {
			Urgency             float64 `yaml:"urgency"`
			CodeCost            float64 `yaml:"code_cost"`
			Discount            float64 `yaml:"discount"`
			Complexity          float64 `yaml:"complexity"`
			ContractualPageCost float64 `yaml:"contractual_page_cost"`
		} `yaml:"settings"`
		Tiers []TierRow `yaml:"tiers"`
	} `yaml:"conclusions"`
	Certificates struct {
		Settings struct {
			Urgency              float64   `yaml:"urgency"`
			AdditionalPageCost   float64   `yaml:"additional_page_cost"`
			ReplacementCost      float64   `yaml:"replacement_cost"`
			ReissuanceCost       float64   `yaml:"reissuance_cost"`
			DuplicateCost        float64   `yaml:"duplicate_cost"`
			FullyProduced        PageBands `yaml:"fully_produced"`
			SufficientProcessing PageBands `yaml:"sufficient_processing"`
		} `yaml:"settings"`
	} `yaml:"certificates"`
}

// LoadTariffs reads a tariffs file, or the embedded defaults when path is
// empty.
func LoadTariffs(path string) (Tariffs, error) {
	raw := defaultTariffs
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Tariffs{}, fmt.Errorf("read tariffs file: %w", err)
		}
		raw = b
	}

	var t Tariffs
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Tariffs{}, fmt.Errorf("parse tariffs: %w", err)
	}
	return t, nil
}

// Apply writes the tariffs of domain d into data.
func (t Tariffs) Apply(d registry.Domain, data *registry.DomainData) {
	if d == registry.Certificates {
		s := t.Certificates.Settings
		data.GeneralSettings = registry.GeneralSettings{
			Urgency:                                  registry.Amount(s.Urgency),
			AdditionalPageCost:                       registry.Amount(s.AdditionalPageCost),
			ReplacementCost:                          registry.Amount(s.ReplacementCost),
			ReissuanceCost:                           registry.Amount(s.ReissuanceCost),
			DuplicateCost:                            registry.Amount(s.DuplicateCost),
			FullyProducedUpTo20PagesCost:             registry.Amount(s.FullyProduced.UpTo20Pages),
			FullyProducedFrom21To200PagesCost:        registry.Amount(s.FullyProduced.From21To200Pages),
			FullyProducedPlus201PagesCost:            registry.Amount(s.FullyProduced.Plus201Pages),
			FullyProducedAdditionalPositionCost:      registry.Amount(s.FullyProduced.AdditionalPosition),
			SufficientProcessingUpTo20PagesCost:      registry.Amount(s.SufficientProcessing.UpTo20Pages),
			SufficientProcessingFrom21To200PagesCost: registry.Amount(s.SufficientProcessing.From21To200Pages),
			SufficientProcessingPlus201PagesCost:     registry.Amount(s.SufficientProcessing.Plus201Pages),
			SufficientProcessingAdditionalPosCost:    registry.Amount(s.SufficientProcessing.AdditionalPosition),
		}
		return
	}

	s := t.Conclusions.Settings
	data.GeneralSettings = registry.GeneralSettings{
		Urgency:             registry.Amount(s.Urgency),
		CodeCost:            registry.Amount(s.CodeCost),
		Discount:            registry.Amount(s.Discount),
		Complexity:          registry.Amount(s.Complexity),
		ContractualPageCost: registry.Amount(s.ContractualPageCost),
	}
	data.CostModelTable = make([]registry.CostModelRow, 0, len(t.Conclusions.Tiers))
	for i, row := range t.Conclusions.Tiers {
		data.CostModelTable = append(data.CostModelTable, registry.CostModelRow{
			ID:     int64(i + 1),
			Models: row.Models,
			UpTo10: registry.Amount(row.UpTo10),
			UpTo20: registry.Amount(row.UpTo20),
			UpTo50: registry.Amount(row.UpTo50),
			Plus51: registry.Amount(row.Plus51),
		})
	}
}

// Run executes the startup seed in an idempotent way: the admin account is
// created once and default tariffs are written only to domains without data.
func Run(ctx context.Context, accounts *users.Repository, svc *registry.Service, cfg Config, logger *zap.Logger) (Stats, error) {
	tariffs, err := LoadTariffs(cfg.TariffsFile)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{}

	created, err := accounts.EnsureAdmin(ctx, cfg.AdminLogin, cfg.AdminPassword, cfg.AdminFullName)
	if err != nil {
		return Stats{}, err
	}
	if created {
		stats.Inserts++
		logger.Info("admin user created", zap.String("login", cfg.AdminLogin))
	}

	for _, d := range registry.Domains() {
		_, err := svc.Update(ctx, d, func(data *registry.DomainData) error {
			if !data.Empty() {
				return errAlreadySeeded
			}
			tariffs.Apply(d, data)
			return nil
		})
		if errors.Is(err, errAlreadySeeded) {
			continue
		}
		if err != nil {
			return Stats{}, fmt.Errorf("seed %s tariffs: %w", d, err)
		}
		stats.Inserts++
		logger.Info("default tariffs written", zap.String("domain", string(d)))
	}

	return stats, nil
}
