package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestNormalizer() *Normalizer {
	shiprocket := NewCourierMapping([]MappingRule{
		{Pattern: "delhivery", Courier: "delhivery"},
		{Pattern: "dtdc 2kg", Courier: "dtdc 3kg"},
		{Pattern: "dtdc", Courier: "dtdc"},
		{Pattern: "xpressbees", Courier: "xpressbees"},
		{Pattern: "ecom", Courier: "ecom express"},
		{Pattern: "bluedart", Courier: "bluedart"},
	})
	return NewNormalizer(map[Aggregator]*CourierMapping{
		"shiprocket": shiprocket,
	})
}

func TestNormalizeExactMatch(t *testing.T) {
	n := newTestNormalizer()

	assert.Equal(t, "delhivery", n.Normalize("shiprocket", "Delhivery"))
	assert.Equal(t, "dtdc 3kg", n.Normalize("shiprocket", "dtdc 2kg"))
}

func TestNormalizeBlankFallsBackToDefault(t *testing.T) {
	n := newTestNormalizer()

	assert.Equal(t, DefaultCourier, n.Normalize("shiprocket", ""))
	assert.Equal(t, DefaultCourier, n.Normalize("shiprocket", "   "))
}

func TestNormalizeSubstringFallback(t *testing.T) {
	n := newTestNormalizer()

	t.Run("pattern inside label", func(t *testing.T) {
		assert.Equal(t, "delhivery", n.Normalize("shiprocket", "delhivery surface 10kg"))
		assert.Equal(t, "ecom express", n.Normalize("shiprocket", "ecom express prepaid"))
	})

	t.Run("label inside pattern", func(t *testing.T) {
		assert.Equal(t, "xpressbees", n.Normalize("shiprocket", "xpress"))
	})

	t.Run("first matching rule wins", func(t *testing.T) {
		// "dtdc 2kg something" matches the "dtdc 2kg" rule before the
		// broader "dtdc" rule because rule order is explicit.
		assert.Equal(t, "dtdc 3kg", n.Normalize("shiprocket", "dtdc 2kg something"))
	})
}

func TestNormalizeServiceVariantLabels(t *testing.T) {
	mapping := NewCourierMapping([]MappingRule{
		{Pattern: "shadowfax", Courier: "shadowfax"},
	})
	n := NewNormalizer(map[Aggregator]*CourierMapping{"nimbuspost": mapping})

	assert.Equal(t, "shadowfax", n.Normalize("nimbuspost", "shadowfax surface"))
	assert.Equal(t, "shadowfax", n.Normalize("nimbuspost", "Shadowfax Air 2kg"))
}

func TestNormalizeSuffixStrippingIsCumulative(t *testing.T) {
	n := newTestNormalizer()

	// No rule matches "quickship surface 5kg"; both suffixes strip off
	// one at a time and the bare base name comes back.
	assert.Equal(t, "quickship", n.Normalize("shiprocket", "quickship surface 5kg"))
}

func TestNormalizeUnmatchedReturnsStrippedBase(t *testing.T) {
	n := newTestNormalizer()

	assert.Equal(t, "wowexpress", n.Normalize("shiprocket", "WowExpress Surface 5kg"))
}

func TestNormalizeUnknownAggregator(t *testing.T) {
	n := newTestNormalizer()

	// No mapping to consult: suffixes still strip, base name comes back.
	assert.Equal(t, "delhivery", n.Normalize("unknown", "delhivery air"))
	assert.Equal(t, DefaultCourier, n.Normalize("unknown", ""))
}

func TestCourierMappingIgnoresBlankRules(t *testing.T) {
	mapping := NewCourierMapping([]MappingRule{
		{Pattern: " ", Courier: "x"},
		{Pattern: "dtdc", Courier: ""},
		{Pattern: "dtdc", Courier: "dtdc"},
	})

	courier, matched := mapping.Resolve("dtdc")
	assert.True(t, matched)
	assert.Equal(t, "dtdc", courier)
}
