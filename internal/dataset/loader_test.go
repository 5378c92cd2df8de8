package dataset

import "testing"

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore([]Entry{
		{Question: "how do i activate my new card", Answer: "Use the mobile app to activate your card.", Category: "CARD"},
		{Question: "how do i block a stolen card", Answer: "Call us immediately to block the card.", Category: "CARD"},
		{Question: "how do i apply for a personal loan", Answer: "Apply through the loans menu.", Category: "LOAN"},
		{Question: "what is the loan interest rate", Answer: "Rates start at 12% per year.", Category: "LOAN"},
		{Question: "where is the nearest branch", Answer: "Use the branch locator on our site.", Category: "FIND"},
		{Question: "how do i find a branch", Answer: "The locator lists every branch and its hours.", Category: "FIND"},
	})
}

func TestSearchWithinDepartment(t *testing.T) {
	store := testStore(t)

	matches := store.Search("CARD", "how do i activate my new card", 1)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Entry.Category != "CARD" {
		t.Errorf("category = %q, want CARD", matches[0].Entry.Category)
	}
	if matches[0].Entry.Answer != "Use the mobile app to activate your card." {
		t.Errorf("wrong entry: %q", matches[0].Entry.Answer)
	}
	if matches[0].Score < 0.9 {
		t.Errorf("exact question score = %f, want ~1.0", matches[0].Score)
	}
}

func TestSearchDoesNotLeakAcrossDepartments(t *testing.T) {
	store := testStore(t)

	for _, m := range store.Search("LOAN", "loan interest rate", 5) {
		if m.Entry.Category != "LOAN" {
			t.Errorf("department search returned %q entry: %q", m.Entry.Category, m.Entry.Question)
		}
	}
}

func TestSearchUnknownDepartmentFallsBackToWholeCorpus(t *testing.T) {
	store := testStore(t)

	matches := store.Search("PASSWORD", "what is the loan interest rate", 1)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Entry.Category != "LOAN" {
		t.Errorf("expected whole-corpus match on LOAN entry, got %q", matches[0].Entry.Category)
	}
}

func TestSearchAll(t *testing.T) {
	store := testStore(t)

	matches := store.SearchAll("where is the nearest branch", 3)
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	if matches[0].Entry.Category != "FIND" {
		t.Errorf("top match category = %q, want FIND", matches[0].Entry.Category)
	}
	if matches[0].Score < matches[1].Score {
		t.Error("matches must be ordered by score descending")
	}
}

func TestLen(t *testing.T) {
	if got := testStore(t).Len(); got != 6 {
		t.Errorf("Len() = %d, want 6", got)
	}
}
