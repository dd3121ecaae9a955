package unitofwork

import (
	"context"

	"github.com/oraclehub-commits/brain-hub/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	OracleSessionRepository() contract.OracleSessionRepository
	SubscriptionRepository() contract.SubscriptionRepository
	ArchetypeRepository() contract.ArchetypeRepository
}
