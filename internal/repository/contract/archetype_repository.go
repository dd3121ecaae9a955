package contract

import (
	"context"

	"github.com/oraclehub-commits/brain-hub/internal/entity"

	"github.com/google/uuid"
)

// ArchetypeRepository reads the diagnosis columns off the users table.
// Nil result means the user never took the quiz.
type ArchetypeRepository interface {
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.ArchetypeProfile, error)
}
