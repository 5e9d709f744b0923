package chi

import (
	"net/http"
	"time"
)

// GetUsage handles GET /api/v1/usage.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request) {
	report := s.usage.GetReport(r.Context())

	writeJSON(w, http.StatusOK, UsageResponse{
		PeriodStartAt: time.UnixMilli(report.PeriodStart()).UTC(),
		ResetsAt:      time.UnixMilli(report.PeriodEnd()).UTC(),
		Limit:         report.Limit(),
		Used:          report.Used(),
		Remaining:     report.Remaining(),
		IsExhausted:   report.IsExhausted(),
	})
}
