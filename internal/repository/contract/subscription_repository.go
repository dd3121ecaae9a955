package contract

import (
	"context"

	"github.com/oraclehub-commits/brain-hub/internal/entity"
	"github.com/oraclehub-commits/brain-hub/internal/repository/specification"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *entity.Subscription) error
	Update(ctx context.Context, subscription *entity.Subscription) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error)
}
