package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("admin123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if !Verify("admin123", hash) {
		t.Error("expected correct password to verify")
	}
	if Verify("wrong", hash) {
		t.Error("expected wrong password to fail")
	}
}

func TestHashesAreSalted(t *testing.T) {
	a, err := Hash("same-password")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	b, err := Hash("same-password")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if a == b {
		t.Error("expected distinct salts to produce distinct hashes")
	}
	if !Verify("same-password", a) || !Verify("same-password", b) {
		t.Error("both hashes should verify")
	}
}

func TestIsHash(t *testing.T) {
	hash, err := Hash("secret")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	tests := []struct {
		name   string
		stored string
		want   bool
	}{
		{"real hash", hash, true},
		{"plaintext legacy", "admin123", false},
		{"short base64", "YWJjZGVm", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHash(tt.stored); got != tt.want {
				t.Errorf("IsHash(%q) = %v, want %v", tt.stored, got, tt.want)
			}
		})
	}
}

func TestVerifyRejectsLegacyValues(t *testing.T) {
	if Verify("admin123", "admin123") {
		t.Error("legacy plaintext must never verify")
	}
}
