package domain

import (
	"sort"
	"time"
)

const (
	StatusProcessed = "processed"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

const (
	ErrCodeFetchFailed   = "fetch_failed"
	ErrCodeDetailMissing = "detail_missing"
	ErrCodeListingNoLink = "listing_no_link"
	ErrCodePersistFailed = "persist_failed"
)

// RunReport summarizes one scrape run: outcome per detail link plus aggregate
// counts. One bad entity never aborts the batch; it shows up here instead.
type RunReport struct {
	ListingURL string `json:"listing_url"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Summary ReportSummary `json:"summary"`
	Items   []ItemResult  `json:"items"`
}

// ReportSummary is derived from Items by Finalize.
type ReportSummary struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// ItemResult records the fate of one listing entry, keyed by its detail link.
type ItemResult struct {
	Title      string `json:"title"`
	DetailLink string `json:"detail_link"`

	Status    string `json:"status"`
	ErrorCode string `json:"error_code,omitempty"`
	ErrorMsg  string `json:"error_msg,omitempty"`
}

// Finalize normalizes timestamps to UTC, sorts items by detail link (entries
// without a link last) and recomputes the summary from the items.
func (r *RunReport) Finalize() {
	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()

	sort.SliceStable(r.Items, func(i, j int) bool {
		a, b := r.Items[i].DetailLink, r.Items[j].DetailLink
		if a == "" {
			return false
		}
		if b == "" {
			return true
		}
		return a < b
	})

	var s ReportSummary
	for _, it := range r.Items {
		switch it.Status {
		case StatusProcessed:
			s.Processed++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
	}
	r.Summary = s
}
