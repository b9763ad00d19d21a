package blog

import (
	"context"
	"fmt"
	"strings"

	"ob-go/internal/model"
)

// ReportService submits abuse reports. The reason is validated before any
// network call so a malformed report never leaves the client.
type ReportService struct {
	gw  Gateway
	log Logger
}

// NewReportService creates a ReportService with the provided dependencies.
func NewReportService(gw Gateway, log Logger) *ReportService {
	return &ReportService{gw: gw, log: log}
}

// Submit reports a user.
func (s *ReportService) Submit(ctx context.Context, userID int64, reason string) (*model.ReportSubmitResponse, error) {
	if err := ValidateReason(reason); err != nil {
		return nil, err
	}

	req := model.ReportRequest{Reason: strings.TrimSpace(reason)}
	var resp model.ReportSubmitResponse
	if err := s.gw.Post(ctx, fmt.Sprintf("/reports/user/%d", userID), req, &resp); err != nil {
		return nil, err
	}

	s.log.Info("report submitted", "id", resp.ReportID, "user", userID)
	return &resp, nil
}
