package implementation

import (
	"context"
	"errors"

	"github.com/oraclehub-commits/brain-hub/internal/entity"
	"github.com/oraclehub-commits/brain-hub/internal/mapper"
	"github.com/oraclehub-commits/brain-hub/internal/model"
	"github.com/oraclehub-commits/brain-hub/internal/repository/contract"
	"github.com/oraclehub-commits/brain-hub/internal/repository/specification"

	"gorm.io/gorm"
)

type OracleSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OracleMapper
}

func NewOracleSessionRepository(db *gorm.DB) contract.OracleSessionRepository {
	return &OracleSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewOracleMapper(),
	}
}

func (r *OracleSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *OracleSessionRepositoryImpl) Create(ctx context.Context, session *entity.OracleSession) error {
	m, err := r.mapper.SessionToModel(session)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	saved, err := r.mapper.SessionToEntity(m)
	if err != nil {
		return err
	}
	*session = *saved
	return nil
}

func (r *OracleSessionRepositoryImpl) Update(ctx context.Context, session *entity.OracleSession) error {
	m, err := r.mapper.SessionToModel(session)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	saved, err := r.mapper.SessionToEntity(m)
	if err != nil {
		return err
	}
	*session = *saved
	return nil
}

func (r *OracleSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.OracleSession, error) {
	var m model.OracleSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SessionToEntity(&m)
}

func (r *OracleSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OracleSession, error) {
	var models []*model.OracleSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.OracleSession, 0, len(models))
	for _, m := range models {
		e, err := r.mapper.SessionToEntity(m)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func (r *OracleSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.OracleSession{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
