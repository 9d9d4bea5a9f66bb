package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWT_SignVerifyRoundtrip(t *testing.T) {
	j := JWT{Secret: []byte("test-secret"), TokenTTL: time.Hour}

	token, expiresAt, err := j.Sign(Claims{UID: "u1", Username: "alice"})
	if err != nil {
		t.Fatalf("sign err=%v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expiresAt in the past: %v", expiresAt)
	}

	claims, err := j.Verify(token)
	if err != nil {
		t.Fatalf("verify err=%v", err)
	}
	if claims.UID != "u1" || claims.Username != "alice" {
		t.Fatalf("claims=%+v", claims)
	}
	if claims.Issuer != "journalx" {
		t.Fatalf("issuer=%q", claims.Issuer)
	}
}

func TestJWT_RejectsWrongSecret(t *testing.T) {
	a := JWT{Secret: []byte("secret-a"), TokenTTL: time.Hour}
	b := JWT{Secret: []byte("secret-b"), TokenTTL: time.Hour}

	token, _, err := a.Sign(Claims{UID: "u1"})
	if err != nil {
		t.Fatalf("sign err=%v", err)
	}
	if _, err := b.Verify(token); err == nil {
		t.Fatalf("token verified with wrong secret")
	}
}

func TestJWT_RejectsExpired(t *testing.T) {
	j := JWT{Secret: []byte("test-secret"), TokenTTL: time.Hour}
	token, _, err := j.Sign(Claims{
		UID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	if err != nil {
		t.Fatalf("sign err=%v", err)
	}
	if _, err := j.Verify(token); err == nil {
		t.Fatalf("expired token verified")
	}
}

func TestJWT_RejectsMissingUID(t *testing.T) {
	j := JWT{Secret: []byte("test-secret"), TokenTTL: time.Hour}
	token, _, err := j.Sign(Claims{})
	if err != nil {
		t.Fatalf("sign err=%v", err)
	}
	if _, err := j.Verify(token); err == nil {
		t.Fatalf("uid-less token verified")
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Bearer  abc ", "abc"},
		{"abc", ""},
		{"Basic abc", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := bearerToken(tc.in); got != tc.want {
			t.Fatalf("bearerToken(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}
