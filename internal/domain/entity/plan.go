// Package entity contains the core business objects of the project.
package entity

import "time"

// Plan represents the subscription tier assigned to a profile. The tier
// decides how many listings a seller may keep active at the same time and
// how long each listing stays visible before it expires.
type Plan string

const (
	// PlanFree is the default tier for every new profile.
	PlanFree Plan = "free"
	// PlanBasic is the entry paid tier.
	PlanBasic Plan = "basic"
	// PlanPro is the tier for frequent sellers.
	PlanPro Plan = "pro"
	// PlanPremium is the highest tier, effectively unlimited.
	PlanPremium Plan = "premium"
)

// planLimits is the canonical active-listing quota table. The limit counts
// listings with status "active" only; sold, expired and removed listings do
// not consume quota.
var planLimits = map[Plan]int{
	PlanFree:    3,
	PlanBasic:   10,
	PlanPro:     30,
	PlanPremium: 999999,
}

// planDurations maps a tier to the lifetime of a freshly created or renewed
// listing.
var planDurations = map[Plan]time.Duration{
	PlanFree:    24 * time.Hour,
	PlanBasic:   72 * time.Hour,
	PlanPro:     7 * 24 * time.Hour,
	PlanPremium: 7 * 24 * time.Hour,
}

// String returns the string representation of the Plan.
func (p Plan) String() string {
	return string(p)
}

// IsValid checks if the Plan is a valid value.
func (p Plan) IsValid() bool {
	switch p {
	case PlanFree, PlanBasic, PlanPro, PlanPremium:
		return true
	default:
		return false
	}
}

// MaxActiveListings returns the number of listings this tier may hold in
// "active" status concurrently. Unknown tiers fall back to the free limit,
// never to unlimited.
func (p Plan) MaxActiveListings() int {
	if limit, ok := planLimits[p]; ok {
		return limit
	}

	return planLimits[PlanFree]
}

// ListingDuration returns how long a listing created under this tier stays
// active before expiring. Unknown tiers fall back to the free duration.
func (p Plan) ListingDuration() time.Duration {
	if d, ok := planDurations[p]; ok {
		return d
	}

	return planDurations[PlanFree]
}
