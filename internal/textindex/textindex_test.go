package textindex

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Reset My PASSWORD", "reset my password"},
		{"collapses whitespace", "  open \t an\n account  ", "open an account"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSearchExactMatch(t *testing.T) {
	ix := NewIndex([]string{"reset password", "open account"})

	hits := ix.Search("reset password", 1)
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].Pos != 0 {
		t.Errorf("expected document 0, got %d", hits[0].Pos)
	}
	if hits[0].Score < 0.99 {
		t.Errorf("exact match score = %f, want ~1.0", hits[0].Score)
	}
}

func TestSearchRanksCloserDocumentFirst(t *testing.T) {
	ix := NewIndex([]string{"reset password", "open account"})

	hits := ix.Search("how do i open a new account", 2)
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Pos != 1 {
		t.Errorf("expected document 1 first, got %d", hits[0].Pos)
	}
	if hits[0].Score <= hits[1].Score {
		t.Errorf("expected strict ordering, got %f then %f", hits[0].Score, hits[1].Score)
	}
}

func TestSearchTieBreaksOnPosition(t *testing.T) {
	// Large corpus: singleton terms drop out, leaving only "card" and
	// "loan" in the vocabulary, so the two card documents tie exactly.
	ix := NewIndex([]string{"card blocked", "card missing", "loan status", "loan interest"})

	hits := ix.Search("card", 4)
	if len(hits) != 4 {
		t.Fatalf("expected 4 hits, got %d", len(hits))
	}
	for i, wantPos := range []int{0, 1, 2, 3} {
		if hits[i].Pos != wantPos {
			t.Errorf("hit %d: pos = %d, want %d", i, hits[i].Pos, wantPos)
		}
	}
	if hits[0].Score != hits[1].Score {
		t.Errorf("expected tied scores, got %f and %f", hits[0].Score, hits[1].Score)
	}
	if hits[2].Score != 0 {
		t.Errorf("loan document should not match, score = %f", hits[2].Score)
	}
}

func TestSearchDeterministicAcrossBuilds(t *testing.T) {
	docs := []string{
		"apply for loan", "loan repayment", "cancel loan",
		"reset password", "forgot password",
		"find nearest branch", "atm swallowed my card",
	}
	queries := []string{"loan repayment", "password help", "branch", "unrelated gibberish"}

	a := NewIndex(docs)
	b := NewIndex(docs)

	for _, q := range queries {
		ha := a.Search(q, len(docs))
		hb := b.Search(q, len(docs))
		if len(ha) != len(hb) {
			t.Fatalf("query %q: hit counts differ: %d vs %d", q, len(ha), len(hb))
		}
		for i := range ha {
			if ha[i] != hb[i] {
				t.Errorf("query %q hit %d: %+v vs %+v", q, i, ha[i], hb[i])
			}
		}
	}
}

func TestSearchEmptyCorpus(t *testing.T) {
	ix := NewIndex(nil)
	if hits := ix.Search("anything", 3); hits != nil {
		t.Errorf("expected nil hits on empty corpus, got %v", hits)
	}
}

func TestCosineNormalized(t *testing.T) {
	a := map[int]float64{0: 0.6, 1: 0.8}
	b := map[int]float64{0: 0.6, 1: 0.8}
	if got := Cosine(a, b); got < 0.999 || got > 1.001 {
		t.Errorf("Cosine(identical) = %f, want 1.0", got)
	}

	c := map[int]float64{2: 1.0}
	if got := Cosine(a, c); got != 0 {
		t.Errorf("Cosine(disjoint) = %f, want 0", got)
	}
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "how do I open an account?", "how do I open an account?"},
		{"tags removed", "<p>How do I <b>reset</b> my PIN?</p>", "How do I reset my PIN?"},
		{"script dropped", "<p>hello</p><script>alert(1)</script>", "hello"},
		{"whitespace collapsed", "too   many\n\nspaces", "too many spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkup(tt.in); got != tt.want {
				t.Errorf("StripMarkup(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
