package summaries

import "time"

// SummaryResponse is the outward-facing representation of a stored summary.
type SummaryResponse struct {
	SummaryID string    `json:"summaryId"`
	FileName  string    `json:"fileName"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
}

// UploadResponse is returned after a document runs through the pipeline.
type UploadResponse struct {
	SummaryID string    `json:"summaryId,omitempty"`
	FileName  string    `json:"fileName"`
	Summary   string    `json:"summary"`
	Saved     bool      `json:"saved"`
	Notice    string    `json:"notice,omitempty"`
	Warning   string    `json:"warning,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		SummaryID: s.ID,
		FileName:  s.FileName,
		Summary:   s.Summary,
		CreatedAt: s.CreatedAt,
	}
}

func toUploadResponse(res UploadResult) UploadResponse {
	resp := UploadResponse{
		FileName:  res.Summary.FileName,
		Summary:   res.Summary.Summary,
		Saved:     res.Saved,
		Notice:    res.Notice,
		Warning:   res.Warning,
		CreatedAt: res.Summary.CreatedAt,
	}
	if res.Saved {
		resp.SummaryID = res.Summary.ID
	}
	return resp
}
