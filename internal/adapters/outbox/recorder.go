package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rafaelleal24/smartpantry/internal/core/domain"
	"github.com/rafaelleal24/smartpantry/internal/core/port"
)

// Recorder stores domain events in the outbox. When ctx carries a
// transaction the insert joins it.
type Recorder struct {
	outbox Repository
}

func NewRecorder(outbox Repository) port.EventPort {
	return &Recorder{outbox: outbox}
}

func (r *Recorder) Record(ctx context.Context, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.GetName(), err)
	}

	return r.outbox.Insert(ctx, Entry{
		EventName:  event.GetName(),
		EntityName: event.GetEntityName(),
		EventData:  data,
		CreatedAt:  time.Now(),
	})
}
