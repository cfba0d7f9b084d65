// Package types provides type definitions for structured data used throughout the connection pathfinder.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Seniority levels inferred from job titles
const (
	SeniorityIntern    = "intern"
	SeniorityJunior    = "junior"
	SeniorityMid       = "mid"
	SenioritySenior    = "senior"
	SeniorityLead      = "lead"
	SeniorityExecutive = "executive"
)

// ActorProfile is an immutable snapshot of a person node in the social graph.
// It is built and owned by the extraction layer.
type ActorProfile struct {
	ID         string            `json:"id" yaml:"id" validate:"required"`
	Name       string            `json:"name,omitempty" yaml:"name,omitempty"`
	Headline   string            `json:"headline,omitempty" yaml:"headline,omitempty"`
	Experience []WorkExperience  `json:"experience,omitempty" yaml:"experience,omitempty"`
	Education  []EducationRecord `json:"education,omitempty" yaml:"education,omitempty"`
	Skills     []SkillRecord     `json:"skills,omitempty" yaml:"skills,omitempty"`
	Location   string            `json:"location,omitempty" yaml:"location,omitempty"`
	Metadata   ProfileMetadata   `json:"metadata" yaml:"metadata,omitempty"`
}

// WorkExperience is a single position in an actor's work history
type WorkExperience struct {
	Company   string   `json:"company" yaml:"company"`
	Title     string   `json:"title,omitempty" yaml:"title,omitempty"`
	Industry  string   `json:"industry,omitempty" yaml:"industry,omitempty"`
	Skills    []string `json:"skills,omitempty" yaml:"skills,omitempty"`
	Domains   []string `json:"domains,omitempty" yaml:"domains,omitempty"`
	StartDate string   `json:"start_date,omitempty" yaml:"start_date,omitempty"` // YYYY-MM
	EndDate   string   `json:"end_date,omitempty" yaml:"end_date,omitempty"`     // YYYY-MM, "present" or empty
}

// EducationRecord is a single school entry
type EducationRecord struct {
	School    string `json:"school" yaml:"school"`
	Degree    string `json:"degree,omitempty" yaml:"degree,omitempty"`
	Field     string `json:"field,omitempty" yaml:"field,omitempty"`
	StartDate string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
}

// SkillRecord is a declared skill with optional proficiency details
type SkillRecord struct {
	Name     string  `json:"name" yaml:"name"`
	Level    string  `json:"level,omitempty" yaml:"level,omitempty"`
	Years    float64 `json:"years,omitempty" yaml:"years,omitempty"`
	Category string  `json:"category,omitempty" yaml:"category,omitempty"`
}

// ProfileMetadata holds values derived from the rest of the profile
type ProfileMetadata struct {
	TotalYearsExperience float64  `json:"total_years_experience" yaml:"total_years_experience"`
	Domains              []string `json:"domains,omitempty" yaml:"domains,omitempty"`
	Seniority            string   `json:"seniority,omitempty" yaml:"seniority,omitempty"`
}

var profileValidator = validator.New()

// Validate checks the profile's required fields.
func (p *ActorProfile) Validate() error {
	return profileValidator.Struct(p)
}

// IsCurrent reports whether the position has no end date.
func (w WorkExperience) IsCurrent() bool {
	end := strings.ToLower(strings.TrimSpace(w.EndDate))
	return end == "" || end == "present"
}

// CurrentPosition returns the first ongoing position, or nil if there is none.
func (p *ActorProfile) CurrentPosition() *WorkExperience {
	for i := range p.Experience {
		if p.Experience[i].IsCurrent() {
			return &p.Experience[i]
		}
	}
	return nil
}

// DisplayName returns the name if set, otherwise the ID.
func (p *ActorProfile) DisplayName() string {
	if strings.TrimSpace(p.Name) != "" {
		return p.Name
	}
	return p.ID
}

// maxYearsExperience caps summed date ranges so malformed data cannot dominate
const maxYearsExperience = 60.0

// seniorityKeywords is checked in order; the first match wins
var seniorityKeywords = []struct {
	level    string
	keywords []string
}{
	{SeniorityExecutive, []string{"chief", "ceo", "cto", "cfo", "coo", "vp", "vice president", "founder", "president"}},
	{SeniorityLead, []string{"head of", "director", "principal", "lead", "staff", "manager"}},
	{SenioritySenior, []string{"senior", "sr"}},
	{SeniorityIntern, []string{"intern", "trainee"}},
	{SeniorityJunior, []string{"junior", "jr", "associate", "graduate"}},
}

// DeriveMetadata fills in metadata the extraction layer left empty.
// Existing non-zero values are preserved. The profile is not modified.
func DeriveMetadata(p ActorProfile, now time.Time) ProfileMetadata {
	meta := p.Metadata

	if meta.TotalYearsExperience == 0 {
		total := 0.0
		for _, exp := range p.Experience {
			total += experienceYears(exp, now)
		}
		if total > maxYearsExperience {
			total = maxYearsExperience
		}
		meta.TotalYearsExperience = total
	}

	if len(meta.Domains) == 0 {
		seen := make(map[string]bool)
		for _, exp := range p.Experience {
			for _, d := range exp.Domains {
				key := strings.ToLower(strings.TrimSpace(d))
				if key == "" || seen[key] {
					continue
				}
				seen[key] = true
				meta.Domains = append(meta.Domains, strings.TrimSpace(d))
			}
		}
	}

	if meta.Seniority == "" {
		meta.Seniority = inferSeniority(p)
	}

	return meta
}

// experienceYears returns the length of a position in years, or 0 if the dates are unusable.
func experienceYears(exp WorkExperience, now time.Time) float64 {
	start, err := time.Parse("2006-01", strings.TrimSpace(exp.StartDate))
	if err != nil {
		return 0
	}

	end := now
	if !exp.IsCurrent() {
		end, err = time.Parse("2006-01", strings.TrimSpace(exp.EndDate))
		if err != nil {
			return 0
		}
	}

	years := end.Sub(start).Hours() / (24 * 365.25)
	if years < 0 {
		return 0
	}
	return years
}

// inferSeniority guesses a seniority level from the current (or most recent) title.
func inferSeniority(p ActorProfile) string {
	title := p.Headline
	if current := p.CurrentPosition(); current != nil && current.Title != "" {
		title = current.Title
	} else if len(p.Experience) > 0 && p.Experience[0].Title != "" {
		title = p.Experience[0].Title
	}

	words := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return ""
	}
	padded := " " + strings.Join(words, " ") + " "

	for _, entry := range seniorityKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(padded, " "+kw+" ") {
				return entry.level
			}
		}
	}
	return SeniorityMid
}
