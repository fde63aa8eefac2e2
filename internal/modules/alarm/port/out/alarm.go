package out

import (
	"context"
	"io"
	"time"

	"holoalarm/internal/modules/alarm/domain"
)

// Repository persists the whole alarm list as one document.
type Repository interface {
	Load(ctx context.Context) ([]domain.Alarm, error)
	Save(ctx context.Context, alarms []domain.Alarm) error
}

type Exporter interface {
	Export(w io.Writer, alarms []domain.Alarm, now time.Time) error
}
