// Package ranking orders applications for a posting.
//
// The score is a placeholder: it is drawn uniformly from [0,100) and does not
// look at the candidate or the resume.
package ranking

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"recruit-platform/internal/models"
)

const MaxScore = 100.0

type RankedApplication struct {
	models.Application
	Score float64 `json:"score"`
}

type Ranker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func New(src rand.Source) *Ranker {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Ranker{rng: rand.New(src)}
}

// Rank scores every application and returns them sorted by score, highest first.
func (r *Ranker) Rank(applications []models.Application) []RankedApplication {
	ranked := make([]RankedApplication, len(applications))

	r.mu.Lock()
	for i, app := range applications {
		ranked[i] = RankedApplication{
			Application: app,
			Score:       r.rng.Float64() * MaxScore,
		}
	}
	r.mu.Unlock()

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}
