// Package timepattern ranks an observed 24-hour activity vector against the
// canonical time-use archetypes. It is a validation signal for role
// inference, never the sole authority.
package timepattern

import (
	"math"
	"sort"

	"github.com/joelkehle/persona-engine/internal/refdata"
)

// HoursPerDay is the required length of every activity vector.
const HoursPerDay = 24

type Match struct {
	Profile    refdata.TimeProfile `json:"profile"`
	Confidence int                 `json:"confidence"`
}

type Matcher struct {
	ds *refdata.Datasets
}

func New(ds *refdata.Datasets) *Matcher {
	return &Matcher{ds: ds}
}

// PredictProfessionFromTime scores the input vector against every archetype
// by cosine similarity scaled to 0-100, sorted descending. Ties keep the
// archetype declaration order. Empty or degenerate input yields an empty
// result, not an error.
func (m *Matcher) PredictProfessionFromTime(hourly []float64) []Match {
	if len(hourly) != HoursPerDay || isDegenerate(hourly) {
		return nil
	}

	out := make([]Match, 0, len(m.ds.TimeProfiles))
	for _, p := range m.ds.TimeProfiles {
		cos := cosine(hourly, p.HourlyWeights[:])
		if cos < 0 {
			cos = 0
		}
		out = append(out, Match{Profile: p, Confidence: int(math.Round(cos * 100))})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	return out
}

func isDegenerate(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
			return true
		}
	}
	return norm(v) == 0
}

func cosine(a, b []float64) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	na, nb := norm(a), norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (na * nb)
}

func norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
