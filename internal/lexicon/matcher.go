// Package lexicon fuzzy-maps free-text occupation strings onto the job
// taxonomy. Matching is rune-level normalized edit distance over every term
// and alias, so Chinese surface forms and English loanwords score on the
// same scale.
package lexicon

import (
	"strings"
	"unicode"

	"github.com/joelkehle/persona-engine/internal/refdata"
)

type Strategy string

const (
	StrategyEnforce Strategy = "ENFORCE"
	StrategySuggest Strategy = "SUGGEST"
	StrategyIgnore  Strategy = "IGNORE"
)

const (
	// Inputs longer than this are cut down to their first chunk before
	// matching; occupation answers front-load the job title.
	maxMatchRunes = 12
	// Similarity below this is treated as no match at all.
	matchCutoff = 0.45
)

type Result struct {
	MatchFound  bool                `json:"match_found"`
	Term        string              `json:"term,omitempty"`
	Coordinates refdata.Coordinates `json:"coordinates"`
	Confidence  float64             `json:"confidence"`
	Strategy    Strategy            `json:"strategy"`
	SalaryKey   string              `json:"salary_key,omitempty"`
}

type surfaceEntry struct {
	surface []rune
	job     int
}

type Matcher struct {
	ds       *refdata.Datasets
	surfaces []surfaceEntry
}

func New(ds *refdata.Datasets) *Matcher {
	m := &Matcher{ds: ds}
	for i, job := range ds.Jobs {
		m.surfaces = append(m.surfaces, surfaceEntry{surface: []rune(strings.ToLower(job.Term)), job: i})
		for _, alias := range job.Aliases {
			m.surfaces = append(m.surfaces, surfaceEntry{surface: []rune(strings.ToLower(alias)), job: i})
		}
	}
	return m
}

// AnalyzeInput resolves an occupation string to taxonomy coordinates.
// Unrecognized input resolves to neutral Standard/General coordinates with
// strategy IGNORE; it never returns an error.
func (m *Matcher) AnalyzeInput(text string) Result {
	input := sanitize(text)
	if len(input) == 0 {
		return noMatch()
	}

	bestSim := -1.0
	bestJob := -1
	for _, e := range m.surfaces {
		sim := similarity(input, e.surface)
		if sim > bestSim {
			bestSim = sim
			bestJob = e.job
		}
	}
	if bestJob < 0 || bestSim < matchCutoff {
		return noMatch()
	}

	job := m.ds.Jobs[bestJob]
	return Result{
		MatchFound:  true,
		Term:        job.Term,
		Coordinates: job.Coordinates,
		Confidence:  bestSim,
		Strategy:    strategyFor(bestSim, job.Weight),
		SalaryKey:   job.SalaryKey,
	}
}

func noMatch() Result {
	return Result{
		MatchFound:  false,
		Coordinates: refdata.NeutralCoordinates(),
		Confidence:  0,
		Strategy:    StrategyIgnore,
	}
}

func strategyFor(confidence, weight float64) Strategy {
	switch {
	case confidence > 0.9:
		return StrategyEnforce
	case confidence > 0.7 && weight >= 0.9:
		// High-authority terms (學生, 公務員) enforce on partial matches.
		return StrategyEnforce
	case confidence > 0.4:
		return StrategySuggest
	default:
		return StrategyIgnore
	}
}

func sanitize(text string) []rune {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	runes := []rune(trimmed)
	if len(runes) <= maxMatchRunes {
		return runes
	}
	chunks := strings.FieldsFunc(trimmed, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(",，、/|;；.。()（）", r)
	})
	if len(chunks) > 0 {
		runes = []rune(chunks[0])
	}
	if len(runes) > maxMatchRunes {
		runes = runes[:maxMatchRunes]
	}
	return runes
}

// similarity is 1 − levenshtein/maxLen, so 1 is exact and 0 shares nothing.
func similarity(a, b []rune) float64 {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 0
	}
	return 1 - float64(levenshtein(a, b))/float64(maxLen)
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
