package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestListingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    ListingStatus
		to      ListingStatus
		allowed bool
	}{
		{"active to sold", ListingStatusActive, ListingStatusSold, true},
		{"active to expired", ListingStatusActive, ListingStatusExpired, true},
		{"active to removed", ListingStatusActive, ListingStatusRemoved, true},
		{"sold back to active", ListingStatusSold, ListingStatusActive, true},
		{"sold to removed", ListingStatusSold, ListingStatusRemoved, true},
		{"sold to expired", ListingStatusSold, ListingStatusExpired, false},
		{"expired to active", ListingStatusExpired, ListingStatusActive, true},
		{"expired to removed", ListingStatusExpired, ListingStatusRemoved, true},
		{"expired to sold", ListingStatusExpired, ListingStatusSold, false},
		{"removed is terminal", ListingStatusRemoved, ListingStatusActive, false},
		{"removed stays removed", ListingStatusRemoved, ListingStatusRemoved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestListing_EffectiveStatus_LazyExpiry(t *testing.T) {
	now := time.Now()

	overdue := &Listing{Status: ListingStatusActive, ExpiresAt: now.Add(-time.Minute)}
	assert.Equal(t, ListingStatusExpired, overdue.EffectiveStatus(now))

	current := &Listing{Status: ListingStatusActive, ExpiresAt: now.Add(time.Hour)}
	assert.Equal(t, ListingStatusActive, current.EffectiveStatus(now))

	// A sold listing past its deadline stays sold; expiration only applies to
	// active listings.
	soldOverdue := &Listing{Status: ListingStatusSold, ExpiresAt: now.Add(-time.Minute)}
	assert.Equal(t, ListingStatusSold, soldOverdue.EffectiveStatus(now))

	removed := &Listing{Status: ListingStatusRemoved, ExpiresAt: now.Add(-time.Minute)}
	assert.Equal(t, ListingStatusRemoved, removed.EffectiveStatus(now))
}

func TestListing_IsExpired_DeadlineIsExclusive(t *testing.T) {
	now := time.Now()
	listing := &Listing{ExpiresAt: now}

	// Exactly at the deadline counts as expired.
	assert.True(t, listing.IsExpired(now))
	assert.False(t, listing.IsExpired(now.Add(-time.Nanosecond)))
}

func TestUserStatus_CanPublish(t *testing.T) {
	assert.True(t, UserStatusActive.CanPublish())
	assert.False(t, UserStatusSuspended.CanPublish())
	assert.False(t, UserStatusBanned.CanPublish())
}

func TestCategory_IsValid(t *testing.T) {
	assert.True(t, CategoryMoveis.IsValid())
	assert.True(t, CategoryVagasEmprego.IsValid())
	assert.False(t, Category("").IsValid())
	assert.False(t, Category("outros").IsValid())
}

func TestCategory_Label(t *testing.T) {
	assert.Equal(t, "Móveis", CategoryMoveis.Label())
	assert.Equal(t, "Outros", Category("unknown").Label())
}
