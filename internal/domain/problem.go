package domain

import "strings"

// Language is the programming language a practice problem is written for
type Language string

const (
	LanguageC      Language = "C"
	LanguageCPP    Language = "C++"
	LanguageJava   Language = "Java"
	LanguagePython Language = "Python"
)

// Languages lists every supported language in display order
var Languages = []Language{LanguageC, LanguageCPP, LanguageJava, LanguagePython}

// Valid reports whether l is one of the supported languages
func (l Language) Valid() bool {
	for _, known := range Languages {
		if l == known {
			return true
		}
	}
	return false
}

// ParseLanguage matches a language name case-insensitively.
// "cpp" is accepted as an alias for C++ since "+" is awkward in URLs.
func ParseLanguage(s string) (Language, error) {
	name := strings.TrimSpace(s)
	if strings.EqualFold(name, "cpp") {
		return LanguageCPP, nil
	}
	for _, known := range Languages {
		if strings.EqualFold(name, string(known)) {
			return known, nil
		}
	}
	return "", ErrUnknownLanguage
}

// Difficulty represents the difficulty level of a problem
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyChallenge    Difficulty = "Challenge"
)

// Weight returns a numeric weight for sorting by difficulty
func (d Difficulty) Weight() int {
	switch d {
	case DifficultyBeginner:
		return 1
	case DifficultyIntermediate:
		return 2
	case DifficultyChallenge:
		return 3
	default:
		return 0
	}
}

// Valid reports whether d is a known difficulty
func (d Difficulty) Valid() bool {
	return d.Weight() > 0
}

// Problem is a catalog-owned practice problem. It is defined when the
// catalog is loaded and never mutated afterwards.
type Problem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Language    Language   `json:"language"`
	Difficulty  Difficulty `json:"difficulty"`
	BaseScore   int        `json:"base_score"`
	Topics      []string   `json:"topics,omitempty"`
	Description string     `json:"description,omitempty"`
}

// ProblemResponse represents a problem in API responses
type ProblemResponse struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Language   Language   `json:"language"`
	Difficulty Difficulty `json:"difficulty"`
	BaseScore  int        `json:"base_score"`
	Topics     []string   `json:"topics"`
}

// ToResponse converts a Problem to a ProblemResponse
func (p *Problem) ToResponse() ProblemResponse {
	topics := p.Topics
	if topics == nil {
		topics = []string{}
	}
	return ProblemResponse{
		ID:         p.ID,
		Title:      p.Title,
		Language:   p.Language,
		Difficulty: p.Difficulty,
		BaseScore:  p.BaseScore,
		Topics:     topics,
	}
}

// SumBaseScores adds up the base score of every problem
func SumBaseScores(problems []Problem) int {
	total := 0
	for _, p := range problems {
		total += p.BaseScore
	}
	return total
}
