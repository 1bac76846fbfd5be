// Package rates holds the static buy-rate table: the negotiated rates this
// platform pays each aggregator per courier. The table is embedded in the
// binary and parsed once at startup; it changes via deployment, never at
// runtime, so lookups need no synchronization.
package rates

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/shipkaro/backend/internal/domain/rating"
)

//go:embed rates.json
var embeddedRates []byte

type aggregatorConfig struct {
	Couriers map[string]*rating.RateProfile `json:"couriers"`
	Mappings []rating.MappingRule           `json:"mappings"`
}

type tableConfig struct {
	Aggregators map[string]aggregatorConfig `json:"aggregators"`
}

// Table is the loaded buy-rate table. It implements rating.RateSource.
type Table struct {
	profiles map[rating.Aggregator]map[string]*rating.RateProfile
	mappings map[rating.Aggregator]*rating.CourierMapping
}

// Load parses the embedded rate table. Malformed profiles fail the load;
// zone gaps are logged as warnings and price as zero at lookup time.
func Load(logger *zap.Logger) (*Table, error) {
	return LoadFrom(embeddedRates, logger)
}

// LoadFrom parses a rate table from raw JSON
func LoadFrom(data []byte, logger *zap.Logger) (*Table, error) {
	var cfg tableConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse rate table: %w", err)
	}
	if len(cfg.Aggregators) == 0 {
		return nil, fmt.Errorf("rate table defines no aggregators")
	}

	t := &Table{
		profiles: make(map[rating.Aggregator]map[string]*rating.RateProfile, len(cfg.Aggregators)),
		mappings: make(map[rating.Aggregator]*rating.CourierMapping, len(cfg.Aggregators)),
	}

	for rawAggregator, aggCfg := range cfg.Aggregators {
		aggregator := rating.NewAggregator(rawAggregator)
		if len(aggCfg.Couriers) == 0 {
			return nil, fmt.Errorf("aggregator %q defines no couriers", aggregator)
		}

		couriers := make(map[string]*rating.RateProfile, len(aggCfg.Couriers))
		for courier, profile := range aggCfg.Couriers {
			if err := profile.Validate(); err != nil {
				return nil, fmt.Errorf("invalid rate profile %s/%s: %w", aggregator, courier, err)
			}
			for _, warning := range profile.ZoneWarnings() {
				logger.Warn("rate profile has a zone gap, lane will price as zero",
					zap.String("aggregator", aggregator.String()),
					zap.String("courier", courier),
					zap.String("gap", warning),
				)
			}
			couriers[courier] = profile
		}

		t.profiles[aggregator] = couriers
		t.mappings[aggregator] = rating.NewCourierMapping(aggCfg.Mappings)
	}

	return t, nil
}

// Profile implements rating.RateSource
func (t *Table) Profile(aggregator rating.Aggregator, courier string) (*rating.RateProfile, bool) {
	couriers, ok := t.profiles[aggregator]
	if !ok {
		return nil, false
	}
	profile, ok := couriers[courier]
	return profile, ok
}

// Aggregators lists the configured aggregator keys
func (t *Table) Aggregators() []rating.Aggregator {
	aggregators := make([]rating.Aggregator, 0, len(t.profiles))
	for a := range t.profiles {
		aggregators = append(aggregators, a)
	}
	return aggregators
}

// Couriers lists the rate keys configured for an aggregator
func (t *Table) Couriers(aggregator rating.Aggregator) []string {
	couriers := make([]string, 0, len(t.profiles[aggregator]))
	for c := range t.profiles[aggregator] {
		couriers = append(couriers, c)
	}
	return couriers
}

// Normalizer builds the courier name normalizer over the table's
// per-aggregator mapping rules.
func (t *Table) Normalizer() *rating.Normalizer {
	return rating.NewNormalizer(t.mappings)
}

// NewCalculator wires the table and its normalizer into a calculator
func (t *Table) NewCalculator() *rating.Calculator {
	return rating.NewCalculator(t, t.Normalizer())
}
