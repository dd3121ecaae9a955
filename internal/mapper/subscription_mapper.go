package mapper

import (
	"github.com/oraclehub-commits/brain-hub/internal/entity"
	"github.com/oraclehub-commits/brain-hub/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) SubscriptionToEntity(s *model.Subscription) *entity.Subscription {
	if s == nil {
		return nil
	}
	return &entity.Subscription{
		Id:           s.Id,
		UserId:       s.UserId,
		Tier:         entity.SubscriptionTier(s.Tier),
		ProExpiresAt: s.ProExpiresAt,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) SubscriptionToModel(s *entity.Subscription) *model.Subscription {
	if s == nil {
		return nil
	}
	return &model.Subscription{
		Id:           s.Id,
		UserId:       s.UserId,
		Tier:         string(s.Tier),
		ProExpiresAt: s.ProExpiresAt,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// ProfileToArchetype returns nil when the user never completed the
// diagnosis quiz, so callers can omit personalization entirely.
func (m *SubscriptionMapper) ProfileToArchetype(u *model.UserProfile) *entity.ArchetypeProfile {
	if u == nil || u.OracleType == nil || *u.OracleType == "" {
		return nil
	}
	profile := &entity.ArchetypeProfile{Type: *u.OracleType}
	if u.OracleShadow != nil {
		profile.Shadow = *u.OracleShadow
	}
	if u.OracleSolution != nil {
		profile.Solution = *u.OracleSolution
	}
	return profile
}
