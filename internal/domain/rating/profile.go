package rating

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ZoneRates maps a zone to a currency amount. Lookups on a missing zone
// resolve to zero rather than failing: pricing is attempted speculatively
// across many lanes and a configuration gap must degrade softly. Load-time
// validation is responsible for surfacing gaps (see MissingZones).
type ZoneRates map[Zone]decimal.Decimal

// Rate returns the configured rate for the zone, or zero when absent
func (zr ZoneRates) Rate(z Zone) decimal.Decimal {
	if r, ok := zr[z]; ok {
		return r
	}
	return decimal.Zero
}

// MissingZones lists the zones with no configured rate, in canonical order
func (zr ZoneRates) MissingZones() []Zone {
	var missing []Zone
	for _, z := range Zones() {
		if _, ok := zr[z]; !ok {
			missing = append(missing, z)
		}
	}
	return missing
}

// Value implements driver.Valuer so contract rate tables can be stored
// as a JSON column
func (zr ZoneRates) Value() (driver.Value, error) {
	if zr == nil {
		return "{}", nil
	}
	b, err := json.Marshal(zr)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// GormDataType tells GORM migrations to use a JSON column
func (ZoneRates) GormDataType() string {
	return "json"
}

// Scan implements sql.Scanner for the JSON column representation
func (zr *ZoneRates) Scan(value any) error {
	if value == nil {
		*zr = ZoneRates{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ZoneRates", value)
	}
	if len(raw) == 0 {
		*zr = ZoneRates{}
		return nil
	}
	return json.Unmarshal(raw, zr)
}

// CODChargeRule computes the cash-on-delivery fee for an order value:
// the greater of the absolute charge and the percentage of order value.
type CODChargeRule struct {
	PercentRate  decimal.Decimal `json:"percentage_rate"`
	AbsoluteRate decimal.Decimal `json:"absolute_rate"`
}

// Fee returns max(absolute, orderValue * percent / 100)
func (r CODChargeRule) Fee(orderValue decimal.Decimal) decimal.Decimal {
	percentFee := orderValue.Mul(r.PercentRate).Div(decimal.NewFromInt(100))
	if percentFee.GreaterThan(r.AbsoluteRate) {
		return percentFee
	}
	return r.AbsoluteRate
}

// RateProfile is the immutable rate configuration for one
// (aggregator, courier) pair. Base rates cover the minimum chargeable
// weight; additional rates are billed per extra weight bracket.
type RateProfile struct {
	MinChargeableWeight     decimal.Decimal `json:"min_chargeable_weight"`
	AdditionalWeightBracket decimal.Decimal `json:"additional_weight_bracket"`
	BaseRates               ZoneRates       `json:"base_rates"`
	AdditionalRates         ZoneRates       `json:"additional_rates"`
	RTOBaseRates            ZoneRates       `json:"rto_base_rates"`
	RTOAdditionalRates      ZoneRates       `json:"rto_additional_rates"`
	CODCharges              CODChargeRule   `json:"cod_charges"`
	TaxRate                 decimal.Decimal `json:"tax_rate"`
	FuelSurcharge           decimal.Decimal `json:"fuel_surcharge"`
	HandlingCharge          decimal.Decimal `json:"handling_charge"`
}

// Validate reports configuration errors that would corrupt billing math.
// Zone gaps are deliberately not errors (soft-zero lookups); use
// ZoneWarnings for those.
func (p *RateProfile) Validate() error {
	if p.MinChargeableWeight.IsNegative() {
		return fmt.Errorf("min_chargeable_weight cannot be negative")
	}
	if !p.AdditionalWeightBracket.IsPositive() {
		return fmt.Errorf("additional_weight_bracket must be positive")
	}
	if p.TaxRate.IsNegative() {
		return fmt.Errorf("tax_rate cannot be negative")
	}
	if p.FuelSurcharge.IsNegative() {
		return fmt.Errorf("fuel_surcharge cannot be negative")
	}
	return nil
}

// ZoneWarnings lists human-readable warnings for rate tables missing one
// of the five zones. Missing zones price as zero at lookup time, which can
// silently under-bill; these warnings exist so the gap is at least visible
// at load time.
func (p *RateProfile) ZoneWarnings() []string {
	var warnings []string
	tables := []struct {
		name  string
		rates ZoneRates
	}{
		{"base_rates", p.BaseRates},
		{"additional_rates", p.AdditionalRates},
		{"rto_base_rates", p.RTOBaseRates},
		{"rto_additional_rates", p.RTOAdditionalRates},
	}
	for _, tbl := range tables {
		for _, z := range tbl.rates.MissingZones() {
			warnings = append(warnings, fmt.Sprintf("%s has no rate for %s", tbl.name, z))
		}
	}
	return warnings
}
