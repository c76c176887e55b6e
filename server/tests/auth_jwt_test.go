package tests

import (
	"strings"
	"testing"
	"time"

	"campuspulse/server/models/auth"
	"campuspulse/server/models/rbac"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	service := auth.NewJWTService(&auth.Config{
		SecretKey:     []byte("test-secret-key"),
		TokenDuration: time.Hour,
	}, nil)

	token, expiresAt, err := service.GenerateToken(42, "grace@campus.edu", rbac.RoleFaculty)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if time.Until(expiresAt) > time.Hour || time.Until(expiresAt) < 55*time.Minute {
		t.Errorf("Unexpected expiry: %v", expiresAt)
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("Expected user id 42, got %d", claims.UserID)
	}
	if claims.Email != "grace@campus.edu" {
		t.Errorf("Expected email to round-trip, got %s", claims.Email)
	}
	if claims.Role != rbac.RoleFaculty {
		t.Errorf("Expected faculty role claim, got %s", claims.Role)
	}
}

func TestJWT_RejectsExpiredToken(t *testing.T) {
	service := auth.NewJWTService(&auth.Config{
		SecretKey:     []byte("test-secret-key"),
		TokenDuration: -time.Minute,
	}, nil)

	token, _, err := service.GenerateToken(1, "a@campus.edu", rbac.RoleStudent)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := service.ValidateToken(token); err == nil {
		t.Error("Expected expired token to be rejected")
	}
}

func TestJWT_RejectsWrongKey(t *testing.T) {
	issuer := auth.NewJWTService(&auth.Config{
		SecretKey:     []byte("key-one"),
		TokenDuration: time.Hour,
	}, nil)
	verifier := auth.NewJWTService(&auth.Config{
		SecretKey:     []byte("key-two"),
		TokenDuration: time.Hour,
	}, nil)

	token, _, err := issuer.GenerateToken(1, "a@campus.edu", rbac.RoleStudent)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("Expected token signed with another key to be rejected")
	}
}

func TestJWT_RejectsTamperedToken(t *testing.T) {
	service := auth.NewJWTService(&auth.Config{
		SecretKey:     []byte("test-secret-key"),
		TokenDuration: time.Hour,
	}, nil)

	token, _, err := service.GenerateToken(1, "a@campus.edu", rbac.RoleStudent)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	// Flip a character in the payload segment
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := service.ValidateToken(tampered); err == nil {
		t.Error("Expected tampered token to be rejected")
	}
}
