package rates

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shipkaro/backend/internal/domain/rating"
)

func TestLoadEmbeddedTable(t *testing.T) {
	table, err := Load(zap.NewNop())
	require.NoError(t, err)

	t.Run("known lanes resolve", func(t *testing.T) {
		profile, ok := table.Profile("shiprocket", "delhivery")
		require.True(t, ok)
		assert.True(t, profile.BaseRates.Rate(rating.ZoneB).Equal(decimal.NewFromInt(26)))

		_, ok = table.Profile("nimbuspost", "shadowfax")
		assert.True(t, ok)
	})

	t.Run("unknown lanes do not resolve", func(t *testing.T) {
		_, ok := table.Profile("shiprocket", "wowexpress")
		assert.False(t, ok)

		_, ok = table.Profile("pickrr", "delhivery")
		assert.False(t, ok)
	})

	t.Run("every profile carries all five zones", func(t *testing.T) {
		for _, aggregator := range table.Aggregators() {
			for _, courier := range table.Couriers(aggregator) {
				profile, ok := table.Profile(aggregator, courier)
				require.True(t, ok)
				assert.Empty(t, profile.ZoneWarnings(), "%s/%s", aggregator, courier)
			}
		}
	})
}

func TestLoadedCalculatorMatchesPublishedRates(t *testing.T) {
	table, err := Load(zap.NewNop())
	require.NoError(t, err)
	calc := table.NewCalculator()

	t.Run("delhivery zone B half kg prepaid", func(t *testing.T) {
		b, err := calc.Calculate(rating.Input{
			Aggregator:  "shiprocket",
			Courier:     "delhivery",
			Zone:        rating.ZoneB,
			Weight:      decimal.NewFromFloat(0.5),
			PaymentMode: rating.PaymentModePrepaid,
		})
		require.NoError(t, err)
		assert.Equal(t, "26.00", b.Freight.StringFixed(2))
		assert.Equal(t, "4.68", b.TaxAmount.StringFixed(2))
		assert.Equal(t, "30.68", b.TotalAmount.StringFixed(2))
	})

	t.Run("dtdc zone A 1.5kg COD", func(t *testing.T) {
		b, err := calc.Calculate(rating.Input{
			Aggregator:  "shiprocket",
			Courier:     "dtdc",
			Zone:        rating.ZoneA,
			Weight:      decimal.NewFromFloat(1.5),
			OrderValue:  decimal.NewFromInt(500),
			PaymentMode: rating.PaymentModeCOD,
		})
		require.NoError(t, err)
		assert.Equal(t, "50.00", b.Freight.StringFixed(2))
		assert.Equal(t, "20.00", b.CODCharges.StringFixed(2))
		assert.Equal(t, "82.60", b.TotalAmount.StringFixed(2))
	})

	t.Run("weight-bracket label maps to 3kg slab", func(t *testing.T) {
		assert.Equal(t, "dtdc 3kg", calc.Normalize("shiprocket", "DTDC 2kg"))
	})
}

func TestLoadFromRejectsBadConfig(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		_, err := LoadFrom([]byte("{"), zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("empty table", func(t *testing.T) {
		_, err := LoadFrom([]byte(`{"aggregators":{}}`), zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("invalid bracket fails load", func(t *testing.T) {
		data := []byte(`{"aggregators":{"shiprocket":{"couriers":{"dtdc":{
			"min_chargeable_weight": 0.5,
			"additional_weight_bracket": 0,
			"base_rates": {"zone_a": 24},
			"cod_charges": {"percentage_rate": 1, "absolute_rate": 20},
			"tax_rate": 18
		}}}}}`)
		_, err := LoadFrom(data, zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("zone gap loads with warning only", func(t *testing.T) {
		data := []byte(`{"aggregators":{"shiprocket":{"couriers":{"dtdc":{
			"min_chargeable_weight": 0.5,
			"additional_weight_bracket": 0.5,
			"base_rates": {"zone_a": 24},
			"cod_charges": {"percentage_rate": 1, "absolute_rate": 20},
			"tax_rate": 18
		}}}}}`)
		table, err := LoadFrom(data, zap.NewNop())
		require.NoError(t, err)

		profile, ok := table.Profile("shiprocket", "dtdc")
		require.True(t, ok)
		assert.True(t, profile.BaseRates.Rate(rating.ZoneE).IsZero())
	})
}
