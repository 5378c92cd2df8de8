package textindex

import (
	"math"
	"regexp"
	"sort"
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// Vectorizer is a deterministic TF-IDF vectorizer over unigrams and
// bigrams. Fitting is done once per corpus; the vocabulary is sorted so
// the same corpus always produces the same columns and therefore the
// same similarity scores across runs.
type Vectorizer struct {
	vocab map[string]int
	idf   []float64
}

// Fit parameters follow the corpus size: small corpora keep every term,
// larger ones drop singleton terms and English stopwords.
const smallCorpusLimit = 3

var whitespaceRE = regexp.MustCompile(`\s+`)

// Normalize lowercases and collapses runs of whitespace.
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	return whitespaceRE.ReplaceAllString(text, " ")
}

func tokenize(text string) []string {
	doc, err := prose.NewDocument(
		Normalize(text),
		prose.WithTagging(false),
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return strings.Fields(Normalize(text))
	}

	var tokens []string
	for _, tok := range doc.Tokens() {
		t := tok.Text
		if len(t) < 2 && !isDigit(t) {
			continue
		}
		if !hasAlnum(t) {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

func isDigit(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r > 127 {
			return true
		}
	}
	return false
}

// terms produces unigrams plus bigrams of the surviving tokens.
func terms(text string, dropStopwords bool) []string {
	tokens := tokenize(text)
	if dropStopwords {
		kept := tokens[:0]
		for _, t := range tokens {
			if !stopwords[t] {
				kept = append(kept, t)
			}
		}
		tokens = kept
	}

	out := make([]string, 0, len(tokens)*2)
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

func fit(docs []string) (*Vectorizer, bool) {
	valid := 0
	for _, d := range docs {
		if strings.TrimSpace(d) != "" {
			valid++
		}
	}

	dropStopwords := valid >= smallCorpusLimit
	minDF := 1
	if dropStopwords {
		minDF = 2
	}

	df := make(map[string]int)
	for _, d := range docs {
		seen := make(map[string]bool)
		for _, t := range terms(d, dropStopwords) {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}

	kept := make([]string, 0, len(df))
	for t, n := range df {
		if n >= minDF {
			kept = append(kept, t)
		}
	}
	sort.Strings(kept)

	v := &Vectorizer{
		vocab: make(map[string]int, len(kept)),
		idf:   make([]float64, len(kept)),
	}
	n := float64(len(docs))
	for i, t := range kept {
		v.vocab[t] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	return v, dropStopwords
}

// Transform maps text to an l2-normalized sparse TF-IDF vector.
func (v *Vectorizer) Transform(text string, dropStopwords bool) map[int]float64 {
	vec := make(map[int]float64)
	for _, t := range terms(text, dropStopwords) {
		if col, ok := v.vocab[t]; ok {
			vec[col] += v.idf[col]
		}
	}

	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for col := range vec {
		vec[col] /= norm
	}
	return vec
}

// Cosine computes the dot product of two normalized sparse vectors.
func Cosine(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for col, w := range a {
		dot += w * b[col]
	}
	return dot
}

// Index is a fitted corpus ready for similarity search.
type Index struct {
	vectorizer    *Vectorizer
	dropStopwords bool
	docs          []map[int]float64
}

type Hit struct {
	Pos   int
	Score float64
}

// NewIndex fits a vectorizer on the corpus and vectorizes every document.
func NewIndex(docs []string) *Index {
	v, dropStopwords := fit(docs)
	ix := &Index{
		vectorizer:    v,
		dropStopwords: dropStopwords,
		docs:          make([]map[int]float64, len(docs)),
	}
	for i, d := range docs {
		ix.docs[i] = v.Transform(d, dropStopwords)
	}
	return ix
}

func (ix *Index) Len() int {
	return len(ix.docs)
}

// Search scores the query against every document and returns the topK
// hits, highest score first. Ties break on document position so results
// are stable across runs.
func (ix *Index) Search(query string, topK int) []Hit {
	if len(ix.docs) == 0 || topK <= 0 {
		return nil
	}

	qv := ix.vectorizer.Transform(query, ix.dropStopwords)

	hits := make([]Hit, len(ix.docs))
	for i, dv := range ix.docs {
		hits[i] = Hit{Pos: i, Score: Cosine(qv, dv)}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Pos < hits[j].Pos
	})

	if topK > len(hits) {
		topK = len(hits)
	}
	return hits[:topK]
}
