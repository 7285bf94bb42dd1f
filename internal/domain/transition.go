package domain

// Provenance records which source produced a travel-time estimate.
type Provenance string

const (
	ProvenanceOracle   Provenance = "oracle"
	ProvenanceFallback Provenance = "fallback"
	ProvenanceCache    Provenance = "cache"
)

// RouteType distinguishes morning pickup routes from afternoon drop-offs.
type RouteType string

const (
	RouteEntry RouteType = "entry"
	RouteExit  RouteType = "exit"
)

// RouteEndpoint describes one route as submitted for validation: where and
// when it starts and ends. Immutable once submitted.
type RouteEndpoint struct {
	RouteID    string
	Type       RouteType
	School     string
	StartCoord Coordinate
	EndCoord   Coordinate
	StartTime  string // HH:MM
	EndTime    string // HH:MM
}

// TransitionQuery is the ordered pair (end of A, start of B) plus the
// scheduled gap between them in minutes. Derived per request, not persisted.
type TransitionQuery struct {
	Origin               Coordinate
	Destination          Coordinate
	TimeAvailableMinutes float64
}

// TransitionResult is a single travel-time/distance estimate. Never mutated
// after creation.
type TransitionResult struct {
	TravelTimeMinutes float64    `json:"travel_time_minutes"`
	DistanceKm        float64    `json:"distance_km"`
	Provenance        Provenance `json:"provenance"`
}

// Tier classifies transition feasibility by buffer size.
type Tier string

const (
	TierExcellent    Tier = "excellent"
	TierGood         Tier = "good"
	TierAcceptable   Tier = "acceptable"
	TierTight        Tier = "tight"
	TierIncompatible Tier = "incompatible"
)

// tierRank orders tiers from worst (0) to best. Used to pick the weakest
// transition of a sequence.
var tierRank = map[Tier]int{
	TierIncompatible: 0,
	TierTight:        1,
	TierAcceptable:   2,
	TierGood:         3,
	TierExcellent:    4,
}

// Worse reports whether t is strictly lower than other in the tier order.
func (t Tier) Worse(other Tier) bool { return tierRank[t] < tierRank[other] }

// TierForBuffer maps a buffer (minutes of slack after travel) to a tier.
// Boundaries are inclusive on the lower side of each band: a buffer of
// exactly 20 is good, exactly 0 is tight.
func TierForBuffer(buffer float64) Tier {
	switch {
	case buffer > 20:
		return TierExcellent
	case buffer > 10:
		return TierGood
	case buffer > 5:
		return TierAcceptable
	case buffer >= 0:
		return TierTight
	default:
		return TierIncompatible
	}
}

// CompatibilityVerdict answers whether one vehicle can make the transition
// between two consecutive routes.
type CompatibilityVerdict struct {
	Compatible    bool
	BufferMinutes float64
	Tier          Tier
	Result        TransitionResult
}
