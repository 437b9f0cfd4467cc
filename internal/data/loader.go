package data

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/studyhub/progress/internal/domain"
)

//go:embed catalog.json
var embeddedCatalog []byte

// Format is the encoding of a catalog document
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// catalogFile represents the on-disk catalog structure
type catalogFile struct {
	Problems []problemEntry `json:"problems" toml:"problems"`
	Contests []contestEntry `json:"contests" toml:"contests"`
}

type problemEntry struct {
	ID          string   `json:"id" toml:"id"`
	Title       string   `json:"title" toml:"title"`
	Language    string   `json:"language" toml:"language"`
	Difficulty  string   `json:"difficulty" toml:"difficulty"`
	BaseScore   int      `json:"base_score" toml:"base_score"`
	Topics      []string `json:"topics" toml:"topics"`
	Description string   `json:"description" toml:"description"`
}

type contestEntry struct {
	ID         string    `json:"id" toml:"id"`
	Title      string    `json:"title" toml:"title"`
	StartTime  time.Time `json:"start_time" toml:"start_time"`
	EndTime    time.Time `json:"end_time" toml:"end_time"`
	ProblemIDs []string  `json:"problem_ids" toml:"problem_ids"`
	MaxScore   *int      `json:"max_score" toml:"max_score"`
}

// Parse decodes a catalog document
func Parse(raw []byte, format Format) (*Catalog, error) {
	var file catalogFile
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("failed to decode toml catalog: %w", err)
		}
	default:
		if err := json.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("failed to decode json catalog: %w", err)
		}
	}

	problems := make([]domain.Problem, len(file.Problems))
	for i, p := range file.Problems {
		language := domain.Language(p.Language)
		if parsed, err := domain.ParseLanguage(p.Language); err == nil {
			language = parsed
		}
		id := p.ID
		if id == "" && p.Title != "" {
			id = ProblemSlug(language, p.Title)
		}
		problems[i] = domain.Problem{
			ID:          id,
			Title:       p.Title,
			Language:    language,
			Difficulty:  domain.Difficulty(p.Difficulty),
			BaseScore:   p.BaseScore,
			Topics:      p.Topics,
			Description: p.Description,
		}
	}

	catalog := NewCatalog(problems, nil)

	contests := make([]domain.Contest, len(file.Contests))
	for i, c := range file.Contests {
		contest := domain.Contest{
			ID:         c.ID,
			Title:      c.Title,
			StartTime:  c.StartTime,
			EndTime:    c.EndTime,
			ProblemIDs: c.ProblemIDs,
		}
		if c.MaxScore != nil {
			contest.MaxScore = *c.MaxScore
		} else {
			contest.MaxScore = domain.SumBaseScores(catalog.ContestProblems(contest))
		}
		contests[i] = contest
	}

	return NewCatalog(problems, contests), nil
}

// ProblemSlug derives a problem id from its language and title
func ProblemSlug(language domain.Language, title string) string {
	prefix := strings.ReplaceAll(string(language), "+", "p")
	return slug.Make(prefix + " " + title)
}

// LoadEmbedded returns the catalog compiled into the binary
func LoadEmbedded() (*Catalog, error) {
	return Parse(embeddedCatalog, FormatJSON)
}

// LoadFile reads a catalog file; the extension selects the format
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	format := FormatJSON
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		format = FormatTOML
	}
	return Parse(raw, format)
}

// LoadCatalog loads the catalog from path, or the embedded catalog when path
// is empty, and logs every validation finding. Findings never fail the load.
func LoadCatalog(path string, logger *zap.Logger) (*Catalog, error) {
	logger.Info("Loading catalog...", zap.String("path", path))

	var (
		catalog *Catalog
		err     error
	)
	if path == "" {
		catalog, err = LoadEmbedded()
	} else {
		catalog, err = LoadFile(path)
	}
	if err != nil {
		return nil, err
	}

	for _, finding := range catalog.Validate() {
		logger.Warn("Catalog validation", zap.Error(finding))
	}

	logger.Info("Catalog loaded",
		zap.Int("problems", len(catalog.problems)),
		zap.Int("contests", len(catalog.contests)),
	)

	return catalog, nil
}
