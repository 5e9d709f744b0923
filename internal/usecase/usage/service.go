package usage

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/pixgallery/internal/domain/usage"
)

// Service handles quota usage reporting.
type Service struct {
	qr  QuotaReader
	now func() time.Time
}

// New creates a Service. qr can be nil (unlimited mode).
func New(qr QuotaReader) *Service {
	return &Service{qr: qr, now: time.Now}
}

// GetReport builds the usage report for the current UTC day.
func (s *Service) GetReport(_ context.Context) domusage.Report {
	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	if s.qr == nil {
		return domusage.NewReport(dayStart.UnixMilli(), dayEnd.UnixMilli(), 0, 0, -1)
	}
	return domusage.NewReport(
		dayStart.UnixMilli(), dayEnd.UnixMilli(),
		s.qr.Limit(), s.qr.Used(), s.qr.Remaining(),
	)
}
