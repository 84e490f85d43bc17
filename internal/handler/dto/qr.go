package dto

import "github.com/qrkeep/qrkeep/internal/model"

// CreateQRRequest is the body for POST /api/qrs.
// Only title and content are required; the rest default server-side.
type CreateQRRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Type    string `json:"type"`
	Color   string `json:"color"`
	BgColor string `json:"bgColor"`
	Project string `json:"project"`
}

// SummaryResponse is the body for GET /api/qrs/summary.
// Fields are always numeric, zero when the user has no rows.
type SummaryResponse struct {
	Total    int64 `json:"total"`
	Last7    int64 `json:"last7days"`
	Projects int64 `json:"projects"`
}

// ToSummaryResponse converts the aggregate model.
func ToSummaryResponse(s *model.QRSummary) SummaryResponse {
	return SummaryResponse{
		Total:    s.Total,
		Last7:    s.Last7,
		Projects: s.Projects,
	}
}
