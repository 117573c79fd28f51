package domain

// RawListingEntry is one movie as it appears on the listing page, text fields
// untouched. DetailLink is absolute and serves as the entity key for the rest
// of the pipeline.
type RawListingEntry struct {
	Title           string
	ReleaseDateText string
	MetascoreText   string
	DetailLink      string
}

// RawDetailEntry holds the raw text extracted from a movie's detail page and
// its details sub-page. Multi-valued fields (director, country) are
// comma-joined. An absent element leaves the field empty; it never fails the
// entry.
type RawDetailEntry struct {
	DetailLink      string
	DistributorText string
	DirectorText    string
	CountryText     string
	RuntimeText     string
}

// OptInt is an integer that may be missing after normalization.
type OptInt struct {
	Value int
	Valid bool
}

// OptFloat is a number that may be missing after normalization.
type OptFloat struct {
	Value float64
	Valid bool
}

// SomeInt builds a present OptInt.
func SomeInt(v int) OptInt { return OptInt{Value: v, Valid: true} }

// SomeFloat builds a present OptFloat.
func SomeFloat(v float64) OptFloat { return OptFloat{Value: v, Valid: true} }

// MovieRecord is the normalized unit of analysis, one per successfully scraped
// detail link. Numeric fields are typed-missing rather than sentinel strings;
// a record with missing fields is still a record.
type MovieRecord struct {
	DetailLink     string
	Title          string
	Year           OptInt
	Metascore      OptFloat
	RuntimeMinutes OptFloat
	Distributor    string
	Director       string
	Country        string
}
