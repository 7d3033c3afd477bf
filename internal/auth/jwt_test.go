package auth_test

import (
	"strings"
	"testing"

	"tradepost/internal/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := auth.GenerateToken("test-secret", "p-alice", "Alice")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := auth.ValidateToken("test-secret", tok)
	if err != nil {
		t.Fatal(err)
	}
	if claims.PrincipalID != "p-alice" || claims.Name != "Alice" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.ID == "" {
		t.Fatal("expected a JTI")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	tok, err := auth.GenerateToken("secret-a", "p-alice", "Alice")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := auth.ValidateToken("secret-b", tok); err == nil {
		t.Fatal("token signed with another secret must fail validation")
	}
}

func TestTokenTampered(t *testing.T) {
	tok, err := auth.GenerateToken("test-secret", "p-alice", "Alice")
	if err != nil {
		t.Fatal(err)
	}
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", tok)
	}
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]
	if _, err := auth.ValidateToken("test-secret", tampered); err == nil {
		t.Fatal("tampered token must fail validation")
	}
}
