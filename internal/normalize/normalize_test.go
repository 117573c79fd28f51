package normalize

import (
	"testing"

	"MovieScanner/internal/domain"
)

func TestYear(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want domain.OptInt
	}{
		{"regular date", "Mar 15, 1972", domain.SomeInt(1972)},
		{"extra comma", "Friday, Mar 15, 1972", domain.SomeInt(1972)},
		{"padded token", "Dec 20,  1995 ", domain.SomeInt(1995)},
		{"no comma", "March 1972", domain.OptInt{}},
		{"trailing token not numeric", "Mar 15, soon", domain.OptInt{}},
		{"empty", "", domain.OptInt{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Year(tc.in)
			if got != tc.want {
				t.Fatalf("Year(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRuntimeMinutes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want domain.OptFloat
	}{
		{"regular runtime", "175 min", domain.SomeFloat(175)},
		{"no unit", "90", domain.SomeFloat(90)},
		{"unit only", "min", domain.OptFloat{}},
		{"non numeric", "two hours", domain.OptFloat{}},
		{"empty", "", domain.OptFloat{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RuntimeMinutes(tc.in)
			if got != tc.want {
				t.Fatalf("RuntimeMinutes(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestMetascore(t *testing.T) {
	t.Parallel()

	if got := Metascore("87"); got != domain.SomeFloat(87) {
		t.Fatalf("Metascore(87) = %+v", got)
	}
	if got := Metascore("abc"); got.Valid {
		t.Fatalf("Metascore(abc) should be missing, got %+v", got)
	}
	if got := Metascore(""); got.Valid {
		t.Fatalf("Metascore empty should be missing, got %+v", got)
	}
}

func TestPrimaryValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"Francis Ford Coppola", "Francis Ford Coppola"},
		{"Joel Coen,Ethan Coen", "Joel Coen"},
		{" Ridley Scott , Tony Scott", "Ridley Scott"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := PrimaryValue(tc.in); got != tc.want {
			t.Fatalf("PrimaryValue(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCountry(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"alias after truncation", "US,France", "USA"},
		{"multi-word alias", "Hong Kong,US", "China"},
		{"gb", "GB", "UK"},
		{"de", "DE", "Germany"},
		{"jp", "JP", "Japan"},
		{"unlisted passthrough", "France,US", "France"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Country(tc.in); got != tc.want {
				t.Fatalf("Country(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCountryIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"US", "GB", "Hong Kong", "France", "USA", "China", ""}
	for _, in := range inputs {
		once := Country(in)
		twice := Country(once)
		if once != twice {
			t.Fatalf("Country not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestRecord(t *testing.T) {
	t.Parallel()

	listing := domain.RawListingEntry{
		Title:           "The Godfather",
		ReleaseDateText: "Mar 15, 1972",
		MetascoreText:   "100",
		DetailLink:      "https://example.org/movie/the-godfather",
	}
	detail := domain.RawDetailEntry{
		DetailLink:      listing.DetailLink,
		DistributorText: "Paramount Pictures",
		DirectorText:    "Francis Ford Coppola",
		CountryText:     "US,Italy",
		RuntimeText:     "175 min",
	}

	rec := Record(listing, detail)

	if rec.DetailLink != listing.DetailLink {
		t.Fatalf("unexpected link: %s", rec.DetailLink)
	}
	if rec.Year != domain.SomeInt(1972) {
		t.Fatalf("unexpected year: %+v", rec.Year)
	}
	if rec.Metascore != domain.SomeFloat(100) {
		t.Fatalf("unexpected metascore: %+v", rec.Metascore)
	}
	if rec.RuntimeMinutes != domain.SomeFloat(175) {
		t.Fatalf("unexpected runtime: %+v", rec.RuntimeMinutes)
	}
	if rec.Country != "USA" {
		t.Fatalf("unexpected country: %s", rec.Country)
	}
	if rec.Director != "Francis Ford Coppola" {
		t.Fatalf("unexpected director: %s", rec.Director)
	}
	if rec.Distributor != "Paramount Pictures" {
		t.Fatalf("unexpected distributor: %s", rec.Distributor)
	}
}

func TestRecordKeepsPartialFailures(t *testing.T) {
	t.Parallel()

	listing := domain.RawListingEntry{
		Title:           "Mystery Film",
		ReleaseDateText: "sometime in 1999",
		MetascoreText:   "abc",
		DetailLink:      "https://example.org/movie/mystery",
	}
	detail := domain.RawDetailEntry{
		DetailLink:  listing.DetailLink,
		RuntimeText: "unknown",
	}

	rec := Record(listing, detail)

	if rec.Year.Valid || rec.Metascore.Valid || rec.RuntimeMinutes.Valid {
		t.Fatalf("expected missing numeric fields, got %+v", rec)
	}
	if rec.Title != "Mystery Film" {
		t.Fatalf("record should retain parsed fields, got title %q", rec.Title)
	}
}
