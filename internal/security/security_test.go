package security

import (
	"errors"
	"testing"
	"time"
)

var fastParams = Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 16, SaltLen: 8}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPasswordWithParams("correct horse", fastParams)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	ok, err := VerifyPassword("correct horse", hash)
	if err != nil || !ok {
		t.Fatalf("expected password to verify, got ok=%v err=%v", ok, err)
	}

	ok, err = VerifyPassword("wrong horse", hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected wrong password to be rejected")
	}
}

func TestVerifyPasswordMalformed(t *testing.T) {
	for _, encoded := range []string{"", "plain", "$bcrypt$v=19$t=1,m=1,p=1$AA$AA", "$argon2id$v=1$t=1,m=1,p=1$AA$AA"} {
		if _, err := VerifyPassword("x", []byte(encoded)); !errors.Is(err, ErrMalformedHash) {
			t.Errorf("expected ErrMalformedHash for %q, got %v", encoded, err)
		}
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken("secret", "user-1", "jane@example.com", "admin", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseAccessToken(token, "secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != "admin" || claims.Email != "jane@example.com" {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestAccessTokenRejected(t *testing.T) {
	expired, err := GenerateAccessToken("secret", "user-1", "a@b.c", "member", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseAccessToken(expired, "secret"); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}

	valid, _ := GenerateAccessToken("secret", "user-1", "a@b.c", "member", time.Hour)
	if _, err := ParseAccessToken(valid, "other-secret"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}
	if _, err := ParseAccessToken("garbage", "secret"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for garbage, got %v", err)
	}
}
