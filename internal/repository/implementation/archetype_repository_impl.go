package implementation

import (
	"context"
	"errors"

	"github.com/oraclehub-commits/brain-hub/internal/entity"
	"github.com/oraclehub-commits/brain-hub/internal/mapper"
	"github.com/oraclehub-commits/brain-hub/internal/model"
	"github.com/oraclehub-commits/brain-hub/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ArchetypeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubscriptionMapper
}

func NewArchetypeRepository(db *gorm.DB) contract.ArchetypeRepository {
	return &ArchetypeRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubscriptionMapper(),
	}
}

func (r *ArchetypeRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.ArchetypeProfile, error) {
	var m model.UserProfile
	if err := r.db.WithContext(ctx).Where("id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ProfileToArchetype(&m), nil
}
