package port

import (
	"context"

	"github.com/rafaelleal24/smartpantry/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPort stores an integration event for later delivery. Called inside a
// transaction, the event commits or rolls back with the data write.
type EventPort interface {
	Record(ctx context.Context, event domain.Event) error
}
