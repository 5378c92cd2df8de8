package routing

import (
	"strings"

	"go.uber.org/zap"

	"github.com/baraka-desk/backend/internal/textindex"
	"github.com/baraka-desk/backend/pkg/logger"
)

// Routing methods reported alongside the department decision.
const (
	MethodRule         = "rule"
	MethodTFIDF        = "tfidf"
	MethodTFIDFLowConf = "tfidf_lowconf"
)

type Decision struct {
	Department string
	Score      float64
	Method     string
}

// Router maps free-text complaint descriptions to a department. The
// keyword table is consulted first; the TF-IDF index over the labeled
// training phrases is the fallback. The index is fit once at startup.
type Router struct {
	index     *textindex.Index
	labels    []string
	threshold float64
}

func NewRouter(threshold float64) *Router {
	var texts []string
	var labels []string
	for _, set := range trainingSets {
		for _, sample := range set.samples {
			texts = append(texts, sample)
			labels = append(labels, set.dept)
		}
	}

	logger.Info("Department router initialized",
		zap.Int("training_phrases", len(texts)),
		zap.Float64("threshold", threshold),
	)

	return &Router{
		index:     textindex.NewIndex(texts),
		labels:    labels,
		threshold: threshold,
	}
}

// Route classifies English text. Keyword hits return score 1.0; TF-IDF
// hits below the similarity threshold fall back to customer care.
func (r *Router) Route(textEN string) Decision {
	t := textindex.Normalize(textEN)

	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(t, kw) {
				return Decision{Department: rule.dept, Score: 1.0, Method: MethodRule}
			}
		}
	}

	hits := r.index.Search(t, 1)
	if len(hits) == 0 {
		return Decision{Department: DeptContact, Score: 0, Method: MethodTFIDFLowConf}
	}

	best := hits[0]
	if best.Score < r.threshold {
		return Decision{Department: DeptContact, Score: best.Score, Method: MethodTFIDFLowConf}
	}
	return Decision{Department: r.labels[best.Pos], Score: best.Score, Method: MethodTFIDF}
}
