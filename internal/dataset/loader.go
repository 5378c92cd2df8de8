package dataset

import (
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"

	"github.com/baraka-desk/backend/internal/textindex"
	"github.com/baraka-desk/backend/pkg/logger"
)

// Entry is one question/answer pair from the base corpus.
type Entry struct {
	Question string
	Answer   string
	Category string
	Intent   string
}

// row mirrors the bitext retail-banking parquet schema.
type row struct {
	Instruction string `parquet:"instruction"`
	Response    string `parquet:"response"`
	Category    string `parquet:"category"`
	Intent      string `parquet:"intent"`
}

// Store holds the base FAQ corpus with similarity indexes built once at
// load: one per department plus one over the whole corpus.
type Store struct {
	entries []Entry

	whole   *textindex.Index
	byDept  map[string]*textindex.Index
	deptPos map[string][]int
}

// Load reads the parquet file and builds the indexes. Rows with an
// empty question or answer are dropped; categories are upper-cased to
// match department codes.
func Load(path string) (*Store, error) {
	rows, err := parquet.ReadFile[row](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		q := strings.TrimSpace(r.Instruction)
		a := strings.TrimSpace(r.Response)
		if q == "" || a == "" {
			continue
		}
		category := strings.ToUpper(strings.TrimSpace(r.Category))
		if category == "" {
			category = "CONTACT"
		}
		entries = append(entries, Entry{
			Question: textindex.StripMarkup(q),
			Answer:   a,
			Category: category,
			Intent:   strings.TrimSpace(r.Intent),
		})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("dataset %s contains no usable rows", path)
	}

	store := build(entries)

	logger.Info("Base dataset loaded",
		zap.String("path", path),
		zap.Int("entries", len(entries)),
		zap.Int("departments", len(store.byDept)),
	)

	return store, nil
}

// NewStore builds a Store from in-memory entries. Tests use it to avoid
// parquet fixtures.
func NewStore(entries []Entry) *Store {
	return build(entries)
}

func build(entries []Entry) *Store {
	store := &Store{
		entries: entries,
		byDept:  make(map[string]*textindex.Index),
		deptPos: make(map[string][]int),
	}

	questions := make([]string, len(entries))
	for i, e := range entries {
		questions[i] = e.Question
		store.deptPos[e.Category] = append(store.deptPos[e.Category], i)
	}
	store.whole = textindex.NewIndex(questions)

	for dept, positions := range store.deptPos {
		deptQuestions := make([]string, len(positions))
		for i, pos := range positions {
			deptQuestions[i] = entries[pos].Question
		}
		store.byDept[dept] = textindex.NewIndex(deptQuestions)
	}

	return store
}

func (s *Store) Len() int {
	return len(s.entries)
}

type Match struct {
	Entry Entry
	Score float64
}

// Search scores the query against the department's rows, or the whole
// corpus when the department has none.
func (s *Store) Search(dept, queryEN string, topK int) []Match {
	index, positions := s.byDept[dept], s.deptPos[dept]
	if index == nil {
		index, positions = s.whole, nil
	}

	hits := index.Search(queryEN, topK)
	matches := make([]Match, 0, len(hits))
	for _, h := range hits {
		pos := h.Pos
		if positions != nil {
			pos = positions[h.Pos]
		}
		matches = append(matches, Match{Entry: s.entries[pos], Score: h.Score})
	}
	return matches
}

// SearchAll always scores against the whole corpus; the fallback stage
// uses it to collect context snippets.
func (s *Store) SearchAll(queryEN string, topK int) []Match {
	hits := s.whole.Search(queryEN, topK)
	matches := make([]Match, 0, len(hits))
	for _, h := range hits {
		matches = append(matches, Match{Entry: s.entries[h.Pos], Score: h.Score})
	}
	return matches
}
