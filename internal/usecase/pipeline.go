package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"MovieScanner/internal/domain"
	"MovieScanner/internal/normalize"
	"MovieScanner/internal/ports"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
// Repository, Reporter and Notifier are optional; the scrape runs without them.
type PipelineDeps struct {
	Listing    ports.ListingSource
	Detail     ports.DetailSource
	Repository ports.MovieRepository
	Reporter   ports.Reporter
	Notifier   ports.Notifier
	Logger     *slog.Logger

	ListingURL  string
	Concurrency int
}

// Pipeline implements the scrape-and-normalize workflow: fetch the listing,
// fetch every detail page concurrently, join listing and detail data by
// detail link, normalize into MovieRecords and hand the table to the
// reporting layer. One bad entity never aborts the run; it is recorded in the
// run report instead.
type Pipeline struct {
	listing    ports.ListingSource
	detail     ports.DetailSource
	repository ports.MovieRepository
	reporter   ports.Reporter
	notifier   ports.Notifier
	logger     *slog.Logger

	listingURL  string
	concurrency int
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	workers := deps.Concurrency
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		listing:     deps.Listing,
		detail:      deps.Detail,
		repository:  deps.Repository,
		reporter:    deps.Reporter,
		notifier:    deps.Notifier,
		logger:      deps.Logger,
		listingURL:  deps.ListingURL,
		concurrency: workers,
	}
}

type detailResult struct {
	link  string
	entry domain.RawDetailEntry
	err   error
}

// Run executes one scrape. The returned error is non-nil only for run-level
// failures (the listing page itself could not be fetched); per-entity failures
// land in the report.
func (p *Pipeline) Run(ctx context.Context) (domain.RunReport, []domain.MovieRecord, error) {
	report := domain.RunReport{
		ListingURL: p.listingURL,
		StartedAt:  time.Now().UTC(),
	}

	entries, err := p.listing.FetchListing(ctx, p.listingURL)
	if err != nil {
		report.FinishedAt = time.Now().UTC()
		report.Finalize()
		return report, nil, fmt.Errorf("fetch listing: %w", err)
	}

	pending := p.triage(ctx, entries, &report)

	details := p.fetchDetails(ctx, pending)

	records := make([]domain.MovieRecord, 0, len(pending))
	for _, entry := range pending {
		res, ok := details[entry.DetailLink]
		if !ok {
			report.Items = append(report.Items, domain.ItemResult{
				Title:      entry.Title,
				DetailLink: entry.DetailLink,
				Status:     domain.StatusFailed,
				ErrorCode:  domain.ErrCodeDetailMissing,
				ErrorMsg:   "no detail result collected for link",
			})
			continue
		}
		if res.err != nil {
			report.Items = append(report.Items, domain.ItemResult{
				Title:      entry.Title,
				DetailLink: entry.DetailLink,
				Status:     domain.StatusFailed,
				ErrorCode:  domain.ErrCodeFetchFailed,
				ErrorMsg:   res.err.Error(),
			})
			continue
		}

		record := normalize.Record(entry, res.entry)
		records = append(records, record)

		item := domain.ItemResult{
			Title:      entry.Title,
			DetailLink: entry.DetailLink,
			Status:     domain.StatusProcessed,
		}
		if p.repository != nil {
			if err := p.repository.SaveMovie(ctx, record); err != nil {
				p.warn("persist movie failed", "link", entry.DetailLink, "error", err)
				item.ErrorCode = domain.ErrCodePersistFailed
				item.ErrorMsg = err.Error()
			}
		}
		report.Items = append(report.Items, item)
	}

	p.publish(ctx, records)

	report.FinishedAt = time.Now().UTC()
	report.Finalize()

	p.info("run finished",
		"processed", report.Summary.Processed,
		"skipped", report.Summary.Skipped,
		"failed", report.Summary.Failed)
	return report, records, nil
}

// triage filters the listing entries down to the ones worth fetching:
// entries without a link or with a duplicate link, and links already stored
// from earlier runs, go straight into the report.
func (p *Pipeline) triage(ctx context.Context, entries []domain.RawListingEntry, report *domain.RunReport) []domain.RawListingEntry {
	links := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.DetailLink != "" {
			links = append(links, e.DetailLink)
		}
	}

	stored := map[string]bool{}
	if p.repository != nil && len(links) > 0 {
		var err error
		stored, err = p.repository.AlreadyScraped(ctx, links)
		if err != nil {
			p.warn("already-scraped lookup failed, scraping everything", "error", err)
			stored = map[string]bool{}
		}
	}

	seen := map[string]bool{}
	pending := make([]domain.RawListingEntry, 0, len(entries))
	for _, entry := range entries {
		switch {
		case entry.DetailLink == "":
			report.Items = append(report.Items, domain.ItemResult{
				Title:     entry.Title,
				Status:    domain.StatusFailed,
				ErrorCode: domain.ErrCodeListingNoLink,
				ErrorMsg:  "listing entry has no detail link",
			})
		case seen[entry.DetailLink]:
			report.Items = append(report.Items, domain.ItemResult{
				Title:      entry.Title,
				DetailLink: entry.DetailLink,
				Status:     domain.StatusSkipped,
				ErrorMsg:   "duplicate detail link on listing page",
			})
		case stored[entry.DetailLink]:
			seen[entry.DetailLink] = true
			report.Items = append(report.Items, domain.ItemResult{
				Title:      entry.Title,
				DetailLink: entry.DetailLink,
				Status:     domain.StatusSkipped,
				ErrorMsg:   "already scraped in an earlier run",
			})
		default:
			seen[entry.DetailLink] = true
			pending = append(pending, entry)
		}
	}
	return pending
}

// fetchDetails runs the detail extraction on a bounded worker pool and
// collects results into a map keyed by detail link. Fetches are independent
// idempotent reads; only the final keyed lookup needs them all complete.
func (p *Pipeline) fetchDetails(ctx context.Context, pending []domain.RawListingEntry) map[string]detailResult {
	jobs := make(chan string)
	results := make(chan detailResult, len(pending))

	var wg sync.WaitGroup
	for i := 0; i < p.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for link := range jobs {
				entry, err := p.detail.ExtractDetail(ctx, link)
				results <- detailResult{link: link, entry: entry, err: err}
			}
		}()
	}

	go func() {
		for _, e := range pending {
			jobs <- e.DetailLink
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	details := make(map[string]detailResult, len(pending))
	for res := range results {
		details[res.link] = res
	}
	return details
}

func (p *Pipeline) publish(ctx context.Context, records []domain.MovieRecord) {
	if p.reporter == nil || len(records) == 0 {
		return
	}

	digest, err := p.reporter.Publish(ctx, records)
	if err != nil {
		p.warn("reporting failed", "error", err)
		return
	}

	if p.notifier != nil && digest != "" {
		if err := p.notifier.PublishDigest(ctx, digest); err != nil {
			p.warn("digest notification failed", "error", err)
		}
	}
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
