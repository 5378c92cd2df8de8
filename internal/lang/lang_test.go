package lang

import "testing"

func TestProtectRestoreRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"single brace", "Your balance is {amount} as of today"},
		{"double brace", "Dear {{name}}, your loan is approved"},
		{"angle", "Visit <branch> before <date>"},
		{"mixed", "Hi {{name}}, send {amount} to <account> by {date}"},
		{"none", "No placeholders here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			protected, mapping := Protect(tt.in)
			if got := Restore(protected, mapping); got != tt.in {
				t.Errorf("round trip = %q, want %q", got, tt.in)
			}
		})
	}
}

func TestProtectReplacesSpans(t *testing.T) {
	protected, mapping := Protect("send {amount} to <account>")
	if len(mapping) != 2 {
		t.Fatalf("expected 2 placeholders, got %d", len(mapping))
	}
	if protected == "send {amount} to <account>" {
		t.Error("expected placeholders to be replaced")
	}
	for k := range mapping {
		if len(k) < 7 || k[:4] != "@@PH" {
			t.Errorf("unexpected token %q", k)
		}
	}
}

func TestRestoreManyTokens(t *testing.T) {
	// Eleven spans force @@PH10@@, which must not be clobbered by the
	// @@PH1@@ replacement.
	in := "{a} {b} {c} {d} {e} {f} {g} {h} {i} {j} {k}"
	protected, mapping := Protect(in)
	if got := Restore(protected, mapping); got != in {
		t.Errorf("round trip = %q, want %q", got, in)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en", English},
		{"sw", Swahili},
		{"am", Amharic},
		{"so", Somali},
		{"ar", Arabic},
		{"fr", English},
		{"", English},
	}

	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValid(t *testing.T) {
	if !Valid("sw") {
		t.Error("expected sw to be valid")
	}
	if Valid("xx") {
		t.Error("expected xx to be invalid")
	}
	if Valid("") {
		t.Error("expected empty code to be invalid")
	}
}
