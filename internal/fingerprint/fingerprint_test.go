package fingerprint

import (
	"strings"
	"testing"
)

func TestDeriveIsDeterministic(t *testing.T) {
	a := Derive("203.0.113.7", "Mozilla/5.0 (X11; Linux x86_64)")
	b := Derive("203.0.113.7", "Mozilla/5.0 (X11; Linux x86_64)")
	if a != b {
		t.Fatalf("Derive() not deterministic: %q vs %q", a, b)
	}
}

func TestDeriveUsesBothInputs(t *testing.T) {
	base := Derive("203.0.113.7", "Mozilla/5.0")
	if got := Derive("203.0.113.7", "curl/8.5.0"); got == base {
		t.Fatalf("same key for different user agents: %q", got)
	}
	if got := Derive("203.0.113.8", "Mozilla/5.0"); got == base {
		t.Fatalf("same key for different IPs: %q", got)
	}
}

func TestDeriveEmptyUserAgentIsValid(t *testing.T) {
	got := Derive("203.0.113.7", "")
	if got == "" {
		t.Fatalf("key for empty user-agent should not be empty")
	}
	if got == Derive("203.0.113.7", "Mozilla/5.0") {
		t.Fatalf("empty user-agent should not collide with a real one")
	}
}

func TestDeriveOutputIsCompactHex(t *testing.T) {
	got := Derive("2001:db8::1", "Mozilla/5.0")
	if len(got) != 64 {
		t.Fatalf("key length = %d, want 64", len(got))
	}
	if strings.ToLower(got) != got {
		t.Fatalf("key should be lowercase hex: %q", got)
	}
	for _, c := range got {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			t.Fatalf("key contains non-hex rune %q", c)
		}
	}
}

func TestDeriveSeparatorPreventsBoundaryShifts(t *testing.T) {
	// "1.2.3.45" + "6" must not collide with "1.2.3.4" + "56".
	if Derive("1.2.3.45", "6") == Derive("1.2.3.4", "56") {
		t.Fatalf("boundary shift between ip and user-agent produced a collision")
	}
}
