package attest

import (
	"testing"
)

func year(v float64) *float64 { return &v }

func TestNormalizeOrthography(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "ⲗⲟⲅⲟⲥ", "ⲗⲟⲅⲟⲥ"},
		{"whitespace and capitals", "  ⲖⲞⲄⲞⲤ ", "ⲗⲟⲅⲟⲥ"},
		{"greek letters", "ⲗογⲟⲥ", "ⲗⲟⲅⲟⲥ"},
		{"precomposed iota", "ⲡϊⲥⲧⲓⲥ", "ⲡⲓⲥⲧⲓⲥ"},
		{"overline", "ⲡ̅ⲛ̅ⲁ̅", "ⲡⲛⲁ"},
		{"combining overline run", "ⲭ︤︥︦ⲥ", "ⲭⲥ"},
		{"nu stroke", "ⲡⲁⲣⲑⲉⲻ", "ⲡⲁⲣⲑⲉⲛ"},
		{"zeta variants", "ⲍⲱⲏ ⳅⲱⲏ ⲹⲱⲏ", "ⲍⲱⲏ ⲍⲱⲏ ⲍⲱⲏ"},
		{"latin o", "ⲗoⲅoⲥ", "ⲗⲟⲅⲟⲥ"},
		{"brackets", "ⲁⲅⲅ[ⲉ]ⲗⲟⲥ", "ⲁⲅⲅⲉⲗⲟⲥ"},
		{"deleted passage", "ⲁⲅ⟦ⲅ⟧ⲅⲉⲗⲟⲥ", "ⲁⲅⲅⲉⲗⲟⲥ"},
		{"column break", "ⲁⲅⲅⲉcol.bⲗⲟⲥ", "ⲁⲅⲅⲉⲗⲟⲥ"},
		{"middle dots", "ⲗⲟ·ⲅⲟ·ⲥ", "ⲗⲟⲅⲟⲥ"},
		{"combining marks", "ⲓ̈ⲱ́ⲥⲏⲫ", "ⲓⲱⲥⲏⲫ"},
		{"half brackets", "⸢ⲗⲟⲅ⸣ⲟⲥ", "ⲗⲟⲅⲟⲥ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeOrthography(tt.in); got != tt.want {
				t.Errorf("NormalizeOrthography(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanDrops(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		ortho string
		lemma string
		want  string
	}{
		{"missing orthography", " ", "λόγος", DropMissingOrthography},
		{"missing lemma", "ⲗⲟⲅⲟⲥ", "", DropMissingLemma},
		{"sic", "ⲗⲟⲅⲟⲥ (sic)", "λόγος", DropSic},
		{"slash", "ⲗⲟⲅ/", "λόγος", DropAbbreviation},
		{"slash overline", "ⲗⲟⲅ/̅", "λόγος", DropAbbreviation},
		{"slash degree", "ⲗⲟⲅ/°", "λόγος", DropAbbreviation},
		{"digit", "ⲗⲟⲅⲟⲥ2", "λόγος", DropEditorialMark},
		{"lacuna dots", "ⲗⲟ..ⲥ", "λόγος", DropEditorialMark},
		{"ellipsis", "ⲗⲟ…", "λόγος", DropEditorialMark},
		{"question mark", "ⲗⲟⲅⲟ?", "λόγος", DropEditorialMark},
		{"numeral sign", "ⲗⲟⲅ⳽", "λόγος", DropEditorialMark},
		{"kept", "ⲗⲟⲅⲟⲥ", "λόγος", ""},
		{"slash inside word kept", "ⲗⲟ/ⲅⲟⲥ", "λόγος", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := Clean(Record{ID: "1", Orthography: tt.ortho, GreekLemmaOriginal: tt.lemma})
			if reason != tt.want {
				t.Fatalf("reason = %q, want %q", reason, tt.want)
			}
			if reason == "" && got.OrthographyClean != "ⲗⲟⲅⲟⲥ" {
				t.Errorf("OrthographyClean = %q", got.OrthographyClean)
			}
			if reason != "" && got.OrthographyClean != "" {
				t.Errorf("dropped row was normalised to %q", got.OrthographyClean)
			}
		})
	}
}

func TestCleanMetadata(t *testing.T) {
	t.Parallel()

	r, reason := Clean(Record{
		ID:                 "9",
		Orthography:        "ⲗⲟⲅⲟⲥ",
		GreekLemmaOriginal: "λόγος",
		DialectGroup:       "Middle Egyptian Dialects",
		Earliest:           year(350),
		Latest:             year(450),
	})
	if reason != "" {
		t.Fatalf("unexpected drop: %s", reason)
	}
	if r.DialectGroup != "M" {
		t.Errorf("DialectGroup = %q, want M", r.DialectGroup)
	}
	if FormatFloat(r.DateApproximate) != "400" {
		t.Errorf("DateApproximate = %s, want 400", FormatFloat(r.DateApproximate))
	}
	if FormatInt(r.Century) != "5" {
		t.Errorf("Century = %s, want 5", FormatInt(r.Century))
	}
}

func TestNormalizeDialectGroup(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Akhmimic Dialects":        "A",
		"Lycopolitan Dialects":     "L",
		"Middle Egyptian Dialects": "M",
		"Sahidic Dialects":         "S",
		"Bohairic Dialects":        "B",
		" Fayyumic Dialects ":      "F",
		"S":                        "S",
		"Nitrian":                  "",
		"":                         "",
	}
	for in, want := range tests {
		if got := NormalizeDialectGroup(in); got != want {
			t.Errorf("NormalizeDialectGroup(%q) = %q, want %q", in, got, want)
		}
	}

	groups := DialectGroups()
	for i, g := range groups {
		if DialectRank(g) != i {
			t.Errorf("DialectRank(%s) = %d, want %d", g, DialectRank(g), i)
		}
	}
	if DialectRank("B") >= DialectRank("A") {
		t.Error("Bohairic should rank north of Akhmimic")
	}
	if DialectRank("X") != -1 {
		t.Error("unknown group should rank -1")
	}
	groups[0] = "Z"
	if DialectGroups()[0] != "B" {
		t.Error("DialectGroups exposed its backing array")
	}
}

func TestApproximateDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		earliest   *float64
		latest     *float64
		wantDate   string
		wantCentry string
	}{
		{"narrow range", year(300), year(400), "350", "4"},
		{"exactly 200", year(600), year(800), "700", "8"},
		{"too wide", year(300), year(501), "", ""},
		{"fractional midpoint", year(301), year(400), "350.5", "4"},
		{"century boundary", year(350), year(450), "400", "5"},
		{"missing earliest", nil, year(400), "", ""},
		{"missing latest", year(400), nil, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ApproximateDate(tt.earliest, tt.latest)
			if got := FormatFloat(d); got != tt.wantDate {
				t.Errorf("date = %q, want %q", got, tt.wantDate)
			}
			if got := FormatInt(CenturyOf(d)); got != tt.wantCentry {
				t.Errorf("century = %q, want %q", got, tt.wantCentry)
			}
		})
	}
}

func TestParseYear(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "  ", "NaN", "nan"} {
		if v, err := parseYear(s); v != nil || err != nil {
			t.Errorf("parseYear(%q) = %v, %v; want unknown", s, v, err)
		}
	}
	if v, err := parseYear(" 450.0 "); err != nil || *v != 450 {
		t.Errorf("parseYear(450.0) = %v, %v", v, err)
	}
	if _, err := parseYear("c. 400"); err == nil {
		t.Error("expected an error for free text")
	}
}
