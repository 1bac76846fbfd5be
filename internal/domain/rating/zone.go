package rating

import (
	"fmt"
	"strings"
)

// Zone is a billing-distance tier between pickup and destination pincode,
// cheapest (A) to most expensive (E). The pincode-pair to zone mapping is
// computed upstream; the engine only consumes the resolved tier.
type Zone string

const (
	ZoneA Zone = "zone_a"
	ZoneB Zone = "zone_b"
	ZoneC Zone = "zone_c"
	ZoneD Zone = "zone_d"
	ZoneE Zone = "zone_e"
)

// Zones returns all zones in canonical order
func Zones() []Zone {
	return []Zone{ZoneA, ZoneB, ZoneC, ZoneD, ZoneE}
}

// ParseZone resolves a zone from user input. It accepts the bare letter
// ("B", "b") as well as the canonical key ("zone_b").
func ParseZone(s string) (Zone, error) {
	cleaned := strings.ToLower(strings.TrimSpace(s))
	if cleaned == "" {
		return "", fmt.Errorf("zone cannot be empty")
	}
	if !strings.HasPrefix(cleaned, "zone_") {
		cleaned = "zone_" + cleaned
	}
	z := Zone(cleaned)
	switch z {
	case ZoneA, ZoneB, ZoneC, ZoneD, ZoneE:
		return z, nil
	}
	return "", fmt.Errorf("unknown zone %q", s)
}

// Letter returns the bare zone letter, e.g. "b" for zone_b
func (z Zone) Letter() string {
	return strings.TrimPrefix(string(z), "zone_")
}

// String returns the canonical zone key
func (z Zone) String() string {
	return string(z)
}

// PaymentMode is how the recipient pays for an order
type PaymentMode string

const (
	PaymentModeCOD     PaymentMode = "cod"
	PaymentModePrepaid PaymentMode = "prepaid"
)

// ParsePaymentMode resolves a payment mode case-insensitively.
// An empty input defaults to prepaid.
func ParsePaymentMode(s string) (PaymentMode, error) {
	cleaned := strings.ToLower(strings.TrimSpace(s))
	switch cleaned {
	case "":
		return PaymentModePrepaid, nil
	case string(PaymentModeCOD):
		return PaymentModeCOD, nil
	case string(PaymentModePrepaid):
		return PaymentModePrepaid, nil
	}
	return "", fmt.Errorf("unknown payment mode %q", s)
}

// IsCOD returns true for cash-on-delivery orders
func (m PaymentMode) IsCOD() bool {
	return m == PaymentModeCOD
}

// Aggregator identifies a shipping marketplace/reseller (e.g. Shiprocket)
// that brokers access to one or more underlying couriers. Keys are
// normalized at construction so rate lookups never depend on input casing.
type Aggregator string

// NewAggregator normalizes a raw aggregator label into a lookup key
func NewAggregator(s string) Aggregator {
	return Aggregator(strings.ToLower(strings.TrimSpace(s)))
}

// String returns the aggregator key
func (a Aggregator) String() string {
	return string(a)
}
