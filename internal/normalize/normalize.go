// Package normalize turns raw scraped text into typed MovieRecord fields.
// Every transform is pure and deterministic; a value that cannot be parsed
// becomes a typed missing marker, never a sentinel string and never a dropped
// record.
package normalize

import (
	"strconv"
	"strings"

	"MovieScanner/internal/domain"
)

// countryAliases recodes site-specific country labels into the canonical
// analysis categories. Applied only after truncation to the primary value.
var countryAliases = map[string]string{
	"US":        "USA",
	"GB":        "UK",
	"DE":        "Germany",
	"JP":        "Japan",
	"Hong Kong": "China",
}

// Record builds the normalized MovieRecord from one listing entry and its
// detail entry. The pair must share the same detail link; the caller joins
// them by key before calling.
func Record(listing domain.RawListingEntry, detail domain.RawDetailEntry) domain.MovieRecord {
	return domain.MovieRecord{
		DetailLink:     listing.DetailLink,
		Title:          strings.TrimSpace(listing.Title),
		Year:           Year(listing.ReleaseDateText),
		Metascore:      Metascore(listing.MetascoreText),
		RuntimeMinutes: RuntimeMinutes(detail.RuntimeText),
		Distributor:    strings.TrimSpace(detail.DistributorText),
		Director:       PrimaryValue(detail.DirectorText),
		Country:        Country(detail.CountryText),
	}
}

// Year extracts the year from a free-form release date such as "Mar 15, 1972":
// the token after the last comma, trimmed and parsed as an integer. Missing
// when there is no comma or the trailing token is not numeric.
func Year(dateText string) domain.OptInt {
	idx := strings.LastIndex(dateText, ",")
	if idx < 0 {
		return domain.OptInt{}
	}

	token := strings.TrimSpace(dateText[idx+1:])
	year, err := strconv.Atoi(token)
	if err != nil {
		return domain.OptInt{}
	}
	return domain.SomeInt(year)
}

// RuntimeMinutes parses a runtime such as "175 min": the literal "min" is
// removed and the remainder parsed as a number. Missing when nothing numeric
// remains.
func RuntimeMinutes(runtimeText string) domain.OptFloat {
	token := strings.ReplaceAll(runtimeText, "min", "")
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.OptFloat{}
	}

	minutes, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return domain.OptFloat{}
	}
	return domain.SomeFloat(minutes)
}

// Metascore parses the aggregate critic score. Missing on non-numeric input.
func Metascore(scoreText string) domain.OptFloat {
	token := strings.TrimSpace(scoreText)
	if token == "" {
		return domain.OptFloat{}
	}

	score, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return domain.OptFloat{}
	}
	return domain.SomeFloat(score)
}

// PrimaryValue truncates a comma-joined multi-value field to its first value.
// A string without a comma passes through whole. Lossy for multi-director and
// multi-country movies; the first listed value stands for the record.
func PrimaryValue(joined string) string {
	if idx := strings.Index(joined, ","); idx >= 0 {
		joined = joined[:idx]
	}
	return strings.TrimSpace(joined)
}

// Country truncates to the primary country and then recodes it through the
// alias table. Truncation happens first: "Hong Kong,US" aliases the primary
// value "Hong Kong", not the raw string. Unlisted values pass through, which
// also makes the mapping idempotent.
func Country(countryText string) string {
	primary := PrimaryValue(countryText)
	if alias, ok := countryAliases[primary]; ok {
		return alias
	}
	return primary
}
