package rating

import "strings"

// DefaultCourier is returned when a courier label cannot be resolved at
// all. Orders arrive from marketplaces with free-text courier names and a
// blank label is routine, so resolution always succeeds with a fallback
// instead of failing the order.
const DefaultCourier = "bluedart"

// courierSuffixes are service-variant suffixes stripped during fallback
// matching, e.g. "delhivery surface 2kg" -> "delhivery surface" ->
// "delhivery". Stripping is cumulative, one suffix at a time from the
// right, until no suffix remains.
var courierSuffixes = []string{
	" air",
	" surface",
	" 1kg",
	" 2kg",
	" 3kg",
	" 5kg",
	" 10kg",
	" express",
}

// MappingRule maps a raw courier-partner pattern to a canonical rate key
// within an aggregator's namespace, e.g. "dtdc 2kg" -> "dtdc 3kg".
type MappingRule struct {
	Pattern string `json:"pattern"`
	Courier string `json:"courier"`
}

// CourierMapping resolves free-text courier labels for one aggregator.
// Rules are an explicit ordered list, not a map: substring fallback is
// order-dependent and the first matching rule wins, so the configuration
// owns disambiguation instead of map iteration order.
type CourierMapping struct {
	exact map[string]string
	rules []MappingRule
}

// NewCourierMapping builds a mapping from an ordered rule list
func NewCourierMapping(rules []MappingRule) *CourierMapping {
	m := &CourierMapping{
		exact: make(map[string]string, len(rules)),
		rules: make([]MappingRule, 0, len(rules)),
	}
	for _, r := range rules {
		pattern := strings.ToLower(strings.TrimSpace(r.Pattern))
		courier := strings.ToLower(strings.TrimSpace(r.Courier))
		if pattern == "" || courier == "" {
			continue
		}
		if _, dup := m.exact[pattern]; !dup {
			m.exact[pattern] = courier
		}
		m.rules = append(m.rules, MappingRule{Pattern: pattern, Courier: courier})
	}
	return m
}

// Resolve maps a cleaned (lowercased, trimmed) label to a canonical
// courier key. The bool reports whether any mapping step matched.
func (m *CourierMapping) Resolve(cleaned string) (string, bool) {
	// Step 1: exact match.
	if courier, ok := m.exact[cleaned]; ok {
		return courier, true
	}

	// Step 2: ordered substring fallback, first rule wins.
	for _, r := range m.rules {
		if strings.Contains(cleaned, r.Pattern) || strings.Contains(r.Pattern, cleaned) {
			return r.Courier, true
		}
	}

	// Step 3: cumulative suffix stripping with exact retry after each
	// strip. Repeats until stable so composite labels like "air 2kg"
	// peel fully regardless of suffix order.
	base := cleaned
	for stripped := true; stripped; {
		stripped = false
		for _, suffix := range courierSuffixes {
			if strings.HasSuffix(base, suffix) {
				base = strings.TrimSpace(strings.TrimSuffix(base, suffix))
				stripped = true
				if courier, ok := m.exact[base]; ok {
					return courier, true
				}
			}
		}
	}

	// Step 4: hand back the stripped base name for the caller's fallback.
	return base, false
}

// Normalizer resolves free-text courier-partner labels to canonical rate
// keys per aggregator. It never fails: every input resolves to some key,
// falling back to DefaultCourier for blank or fully unknown labels.
type Normalizer struct {
	mappings map[Aggregator]*CourierMapping
}

// NewNormalizer creates a Normalizer over per-aggregator mappings
func NewNormalizer(mappings map[Aggregator]*CourierMapping) *Normalizer {
	if mappings == nil {
		mappings = make(map[Aggregator]*CourierMapping)
	}
	return &Normalizer{mappings: mappings}
}

// Normalize resolves a raw courier-partner label within an aggregator's
// namespace. See CourierMapping.Resolve for the matching steps.
func (n *Normalizer) Normalize(aggregator Aggregator, raw string) string {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	if cleaned == "" {
		return DefaultCourier
	}

	mapping, ok := n.mappings[aggregator]
	if !ok {
		return fallbackBase(cleaned)
	}

	courier, matched := mapping.Resolve(cleaned)
	if matched {
		return courier
	}
	if courier == "" {
		return DefaultCourier
	}
	return courier
}

// fallbackBase strips known suffixes from a label with no mapping to
// consult, mirroring the suffix step of CourierMapping.Resolve.
func fallbackBase(cleaned string) string {
	base := cleaned
	for stripped := true; stripped; {
		stripped = false
		for _, suffix := range courierSuffixes {
			if strings.HasSuffix(base, suffix) {
				base = strings.TrimSpace(strings.TrimSuffix(base, suffix))
				stripped = true
			}
		}
	}
	if base == "" {
		return DefaultCourier
	}
	return base
}
