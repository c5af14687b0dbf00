package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, expiresAt, err := tm.GenerateToken("session-123")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if expiresAt.IsZero() {
		t.Fatal("expiry not set")
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.SessionID != "session-123" {
		t.Errorf("session id = %q, want session-123", claims.SessionID)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 60).GenerateToken("session-123")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := NewTokenManager("secret-b", 60).ParseToken(token); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
	if _, err := NewTokenManager("secret-a", 60).ParseToken("not-a-token"); err == nil {
		t.Fatal("malformed token accepted")
	}
}

func TestOperatorPasswordRoundTrip(t *testing.T) {
	hash, err := HashOperatorPassword("s3nha-do-painel", 4)
	if err != nil {
		t.Fatalf("HashOperatorPassword: %v", err)
	}
	if err := VerifyOperatorPassword(hash, "s3nha-do-painel"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := VerifyOperatorPassword(hash, "errada"); err == nil {
		t.Error("wrong password accepted")
	}
}
