package similarity

import (
	"sort"
	"strings"
	"unicode"

	"github.com/jonathan/connection-pathfinder/internal/types"
)

// skillSynonyms maps common skill name variants to a canonical lower-cased name
var skillSynonyms = map[string]string{
	"golang":              "go",
	"go lang":             "go",
	"js":                  "javascript",
	"ts":                  "typescript",
	"k8s":                 "kubernetes",
	"react.js":            "react",
	"reactjs":             "react",
	"vue.js":              "vue",
	"vuejs":               "vue",
	"nodejs":              "node.js",
	"node":                "node.js",
	"postgres":            "postgresql",
	"ml":                  "machine learning",
	"ai":                  "artificial intelligence",
	"amazon web services": "aws",
	"gcp":                 "google cloud",
}

// companySuffixes are legal-entity suffixes stripped before company comparison
var companySuffixes = []string{
	" incorporated", " inc.", " inc", " llc", " ltd.", " ltd", " corp.", " corp",
	" corporation", " co.", " gmbh", " plc", " s.a.", " ag",
}

// industryStopWords are ignored when tokenizing industry names for partial credit
var industryStopWords = map[string]bool{
	"and": true, "of": true, "the": true, "services": true,
}

// NormalizeSkill lower-cases and trims a skill name and collapses common synonyms.
func NormalizeSkill(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.Join(strings.Fields(normalized), " ")
	if canonical, ok := skillSynonyms[normalized]; ok {
		return canonical
	}
	return normalized
}

// NormalizeCompany lower-cases a company name and strips legal-entity suffixes like "Inc.".
func NormalizeCompany(name string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(name), " "))
	normalized = strings.TrimSuffix(normalized, ",")
	for _, suffix := range companySuffixes {
		if strings.HasSuffix(normalized, suffix) {
			normalized = strings.TrimSuffix(normalized, suffix)
			break
		}
	}
	return strings.TrimSpace(strings.TrimSuffix(normalized, ","))
}

// normalizeText lower-cases and collapses whitespace
func normalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// industryTokens splits an industry name into keywords
func industryTokens(industry string) []string {
	words := strings.FieldsFunc(strings.ToLower(industry), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if !industryStopWords[w] {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// skillSet collects normalized skill names from declared skills and per-role skills
func skillSet(p *types.ActorProfile) map[string]bool {
	set := make(map[string]bool)
	for _, s := range p.Skills {
		if n := NormalizeSkill(s.Name); n != "" {
			set[n] = true
		}
	}
	for _, exp := range p.Experience {
		for _, s := range exp.Skills {
			if n := NormalizeSkill(s); n != "" {
				set[n] = true
			}
		}
	}
	return set
}

// companySet collects normalized current and past employers
func companySet(p *types.ActorProfile) map[string]bool {
	set := make(map[string]bool)
	for _, exp := range p.Experience {
		if n := NormalizeCompany(exp.Company); n != "" {
			set[n] = true
		}
	}
	return set
}

// industrySet collects normalized industries across the work history
func industrySet(p *types.ActorProfile) map[string]bool {
	set := make(map[string]bool)
	for _, exp := range p.Experience {
		if n := normalizeText(exp.Industry); n != "" {
			set[n] = true
		}
	}
	return set
}

// schoolSet collects normalized school names
func schoolSet(p *types.ActorProfile) map[string]bool {
	set := make(map[string]bool)
	for _, edu := range p.Education {
		if n := normalizeText(edu.School); n != "" {
			set[n] = true
		}
	}
	return set
}

// jaccard returns |a ∩ b| / |a ∪ b| and the sorted intersection. Empty sets score 0.
func jaccard(a, b map[string]bool) (float64, []string) {
	if len(a) == 0 || len(b) == 0 {
		return 0, nil
	}

	shared := make([]string, 0)
	for k := range a {
		if b[k] {
			shared = append(shared, k)
		}
	}
	sort.Strings(shared)

	union := len(a) + len(b) - len(shared)
	if union == 0 {
		return 0, nil
	}
	return float64(len(shared)) / float64(union), shared
}

// regionAliases maps state and province abbreviations to their full names
var regionAliases = map[string]string{
	"al": "alabama", "ak": "alaska", "az": "arizona", "ar": "arkansas", "ca": "california",
	"co": "colorado", "ct": "connecticut", "de": "delaware", "dc": "district of columbia",
	"fl": "florida", "ga": "georgia", "hi": "hawaii", "id": "idaho", "il": "illinois",
	"in": "indiana", "ia": "iowa", "ks": "kansas", "ky": "kentucky", "la": "louisiana",
	"me": "maine", "md": "maryland", "ma": "massachusetts", "mi": "michigan", "mn": "minnesota",
	"ms": "mississippi", "mo": "missouri", "mt": "montana", "ne": "nebraska", "nv": "nevada",
	"nh": "new hampshire", "nj": "new jersey", "nm": "new mexico", "ny": "new york",
	"nc": "north carolina", "nd": "north dakota", "oh": "ohio", "ok": "oklahoma", "or": "oregon",
	"pa": "pennsylvania", "ri": "rhode island", "sc": "south carolina", "sd": "south dakota",
	"tn": "tennessee", "tx": "texas", "ut": "utah", "vt": "vermont", "va": "virginia",
	"wa": "washington", "wv": "west virginia", "wi": "wisconsin", "wy": "wyoming",
	"ab": "alberta", "bc": "british columbia", "mb": "manitoba", "nb": "new brunswick",
	"nl": "newfoundland and labrador", "ns": "nova scotia", "on": "ontario",
	"pe": "prince edward island", "qc": "quebec", "sk": "saskatchewan",
}

// knownRegions holds the full names from regionAliases
var knownRegions = func() map[string]bool {
	set := make(map[string]bool, len(regionAliases))
	for _, name := range regionAliases {
		set[name] = true
	}
	return set
}()

// countryAliases maps common country spellings to one canonical name
var countryAliases = map[string]string{
	"us": "united states", "u.s.": "united states", "usa": "united states", "u.s.a.": "united states",
	"united states of america": "united states", "uk": "united kingdom", "u.k.": "united kingdom",
	"great britain": "united kingdom", "england": "united kingdom",
}

var knownCountries = map[string]bool{
	"united states": true, "united kingdom": true, "canada": true, "mexico": true, "brazil": true,
	"argentina": true, "germany": true, "france": true, "spain": true, "portugal": true,
	"italy": true, "netherlands": true, "ireland": true, "switzerland": true, "sweden": true,
	"norway": true, "denmark": true, "finland": true, "poland": true, "israel": true,
	"india": true, "china": true, "japan": true, "south korea": true, "singapore": true,
	"australia": true, "new zealand": true,
}

// location is a parsed "City, Region[, Country]" string.
// A lone country fills only country, which never earns location credit.
type location struct {
	city    string
	region  string
	country string
}

func normalizeRegion(s string) string {
	if full, ok := regionAliases[s]; ok {
		return full
	}
	if full, ok := countryAliases[s]; ok {
		return full
	}
	return s
}

// stripMetro removes metro decorations and reports whether any were found
func stripMetro(s string) (string, bool) {
	city := strings.TrimPrefix(s, "greater ")
	for _, suffix := range []string{" metropolitan area", " metro area", " bay area", " area"} {
		if strings.HasSuffix(city, suffix) {
			city = strings.TrimSuffix(city, suffix)
			break
		}
	}
	city = strings.TrimSpace(city)
	return city, city != s
}

// parseLocation splits a free-form location and strips metro decorations.
// A single token is a city only when it carries a metro decoration or is not a
// known region or country.
func parseLocation(raw string) location {
	parts := strings.Split(raw, ",")
	clean := make([]string, 0, len(parts))
	for _, part := range parts {
		if n := normalizeText(part); n != "" {
			clean = append(clean, n)
		}
	}

	switch len(clean) {
	case 0:
		return location{}
	case 1:
		if city, metro := stripMetro(clean[0]); metro {
			return location{city: city}
		}
		token := normalizeRegion(clean[0])
		switch {
		case knownRegions[token]:
			return location{region: token}
		case knownCountries[token]:
			return location{country: token}
		}
		return location{city: token}
	}

	city, _ := stripMetro(clean[0])
	loc := location{city: city, region: normalizeRegion(clean[1])}
	if len(clean) > 2 {
		loc.country = normalizeRegion(clean[2])
	}
	return loc
}
