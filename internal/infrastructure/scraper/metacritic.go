package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"MovieScanner/internal/domain"
	"MovieScanner/internal/scanner"
)

// detailsSuffix is the site's fixed path convention for the secondary
// metadata page (country lives there, not on the base detail page).
const detailsSuffix = "/details"

// Selectors matched against the site's review-listing and detail templates.
const (
	listingItemSel  = "td.clamp-summary-wrap"
	listingTitleSel = "a.title h3"
	listingDateSel  = "div.clamp-details span"
	listingScoreSel = "div.metascore_w"
	listingLinkSel  = "a.title"

	detailDistributorSel = "span.distributor a"
	detailDirectorSel    = "div.director a"
	detailRuntimeSel     = "div.runtime span.data"
	detailCountrySel     = "div.countries span.data"
)

// Metacritic scrapes the review-aggregation site's browse listing and per-movie
// detail pages. Each distinct URL is fetched exactly once per call; all fields
// come from that single parsed document.
type Metacritic struct {
	client  *Client
	baseURL string
	logger  *slog.Logger
}

var _ scanner.Site = (*Metacritic)(nil)

// NewMetacritic wires the fetch client and the site origin used to resolve
// relative detail links.
func NewMetacritic(client *Client, baseURL string, log *slog.Logger) *Metacritic {
	if client == nil {
		client = NewClient(nil, "", defaultRetryMax, defaultBackoff)
	}
	return &Metacritic{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  log,
	}
}

// Name identifies the scraper inside the registry.
func (m *Metacritic) Name() string {
	return "metacritic"
}

// FetchListing retrieves the single listing page and extracts one raw entry
// per listed movie. Each entry is read from its own container node, so a
// missing field yields an empty string for that entry and can never shift
// fields between neighbours.
func (m *Metacritic) FetchListing(ctx context.Context, listingURL string) ([]domain.RawListingEntry, error) {
	doc, err := m.client.Document(ctx, listingURL)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", listingURL, err)
	}

	var entries []domain.RawListingEntry
	doc.Find(listingItemSel).Each(func(_ int, item *goquery.Selection) {
		entry := domain.RawListingEntry{
			Title:           strings.TrimSpace(item.Find(listingTitleSel).First().Text()),
			ReleaseDateText: strings.TrimSpace(item.Find(listingDateSel).First().Text()),
			MetascoreText:   strings.TrimSpace(item.Find(listingScoreSel).First().Text()),
		}

		if href, ok := item.Find(listingLinkSel).First().Attr("href"); ok {
			entry.DetailLink = m.resolveLink(href)
		}

		entries = append(entries, entry)
	})

	m.debug("listing fetched", "url", listingURL, "entries", len(entries))
	return entries, nil
}

// ExtractDetail fetches the detail page and the details sub-page once each and
// extracts all raw fields from the two parsed documents. An absent element
// yields an empty field, never an error. A failed sub-page fetch degrades to an
// empty country; only a failed detail-page fetch fails the entity.
func (m *Metacritic) ExtractDetail(ctx context.Context, detailLink string) (domain.RawDetailEntry, error) {
	doc, err := m.client.Document(ctx, detailLink)
	if err != nil {
		return domain.RawDetailEntry{}, fmt.Errorf("detail %s: %w", detailLink, err)
	}

	entry := domain.RawDetailEntry{
		DetailLink:      detailLink,
		DistributorText: strings.TrimSpace(doc.Find(detailDistributorSel).First().Text()),
		DirectorText:    joinedText(doc, detailDirectorSel),
		RuntimeText:     strings.TrimSpace(doc.Find(detailRuntimeSel).First().Text()),
	}

	detailsURL := detailLink + detailsSuffix
	sub, err := m.client.Document(ctx, detailsURL)
	if err != nil {
		m.warn("details sub-page failed, country left empty", "url", detailsURL, "error", err)
		return entry, nil
	}
	entry.CountryText = joinedText(sub, detailCountrySel)

	return entry, nil
}

func (m *Metacritic) resolveLink(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return m.baseURL + href
}

// joinedText collects the text of all matched elements and comma-joins them,
// preserving document order.
func joinedText(doc *goquery.Document, selector string) string {
	var values []string
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			values = append(values, text)
		}
	})
	return strings.Join(values, ",")
}

func (m *Metacritic) debug(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Debug(msg, args...)
	}
}

func (m *Metacritic) warn(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Warn(msg, args...)
	}
}
