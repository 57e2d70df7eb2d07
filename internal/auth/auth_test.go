package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"utfpr.edu.br/menfin/internal/config"
)

func TestJWTRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	id, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT() error = %v", err)
	}
	if id != 42 {
		t.Errorf("ValidateJWT() = %d, want 42", id)
	}

	config.AppConfig.JWTSecret = "other-secret"
	if _, err := ValidateJWT(token); err == nil {
		t.Error("ValidateJWT() with a different secret should fail")
	}
}

func TestValidateJWTRejectsNonNumericSubject(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "maria"}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidateJWT(token); err == nil {
		t.Error("ValidateJWT() should reject a non-numeric subject")
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("senha123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "senha123" {
		t.Fatal("HashPassword() returned the plain password")
	}
	if !CheckPassword(hash, "senha123") {
		t.Error("CheckPassword() rejected the right password")
	}
	if CheckPassword(hash, "senha124") {
		t.Error("CheckPassword() accepted a wrong password")
	}
}
