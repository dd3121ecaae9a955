package contract

import (
	"context"

	"github.com/oraclehub-commits/brain-hub/internal/entity"
	"github.com/oraclehub-commits/brain-hub/internal/repository/specification"
)

type OracleSessionRepository interface {
	Create(ctx context.Context, session *entity.OracleSession) error
	// Update writes the full row (message log included) in one statement.
	Update(ctx context.Context, session *entity.OracleSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.OracleSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OracleSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
