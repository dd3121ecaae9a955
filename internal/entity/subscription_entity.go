package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionTier string

const (
	TierFree       SubscriptionTier = "FREE"
	TierPro        SubscriptionTier = "PRO"
	TierEnterprise SubscriptionTier = "ENTERPRISE"
)

// Subscription is the stored record. The stored Tier alone is not
// authoritative: PRO access also requires ProExpiresAt to be nil or in
// the future, which pkg/oracle/tier computes per request.
type Subscription struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Tier         SubscriptionTier
	ProExpiresAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
