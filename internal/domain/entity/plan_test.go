package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlan_MaxActiveListings(t *testing.T) {
	tests := []struct {
		plan  Plan
		limit int
	}{
		{PlanFree, 3},
		{PlanBasic, 10},
		{PlanPro, 30},
		{PlanPremium, 999999},
	}

	for _, tt := range tests {
		t.Run(tt.plan.String(), func(t *testing.T) {
			assert.Equal(t, tt.limit, tt.plan.MaxActiveListings())
		})
	}
}

func TestPlan_MaxActiveListings_UnknownFallsBackToFree(t *testing.T) {
	// A corrupt or future tier must never read as unlimited.
	assert.Equal(t, PlanFree.MaxActiveListings(), Plan("enterprise").MaxActiveListings())
}

func TestPlan_ListingDuration(t *testing.T) {
	tests := []struct {
		plan     Plan
		duration time.Duration
	}{
		{PlanFree, 24 * time.Hour},
		{PlanBasic, 72 * time.Hour},
		{PlanPro, 7 * 24 * time.Hour},
		{PlanPremium, 7 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.plan.String(), func(t *testing.T) {
			assert.Equal(t, tt.duration, tt.plan.ListingDuration())
		})
	}
}

func TestPlan_ListingDuration_UnknownFallsBackToFree(t *testing.T) {
	assert.Equal(t, PlanFree.ListingDuration(), Plan("enterprise").ListingDuration())
}

func TestPlan_IsValid(t *testing.T) {
	assert.True(t, PlanFree.IsValid())
	assert.True(t, PlanPremium.IsValid())
	assert.False(t, Plan("").IsValid())
	assert.False(t, Plan("gold").IsValid())
}
