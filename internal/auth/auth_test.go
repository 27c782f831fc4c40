package auth

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/srishti-farm/farmstay-api/internal/config"
	"github.com/srishti-farm/farmstay-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuth(t *testing.T) (*gorm.DB, *AuthHandler) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.AutoMigrate(&models.User{})

	return db, NewAuthHandler(&config.Config{JWTSecret: "test-secret"}, db)
}

func seedUser(t *testing.T, db *gorm.DB, email, password, role string, active bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{Email: email, PasswordHash: string(hash), Role: role, IsActive: active}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
}

func loginStatus(t *testing.T, err error) int {
	t.Helper()
	se, ok := err.(huma.StatusError)
	if !ok {
		t.Fatalf("expected huma.StatusError, got %T: %v", err, err)
	}
	return se.GetStatus()
}

func TestHandleLogin(t *testing.T) {
	db, handler := setupAuth(t)
	seedUser(t, db, "admin@srishtithefarm.com", "admin123", "admin", true)

	req := LoginRequest{}
	req.Body.Email = "admin@srishtithefarm.com"
	req.Body.Password = "admin123"

	resp, err := handler.HandleLogin(context.Background(), &req)
	if err != nil {
		t.Fatalf("HandleLogin returned error: %v", err)
	}
	if resp.Body.Token == "" {
		t.Error("expected a token")
	}
	if resp.Body.Role != "admin" {
		t.Errorf("expected role admin, got %s", resp.Body.Role)
	}

	// The issued token authorizes admin requests.
	if _, err := handler.Authorize(context.Background(), "Bearer "+resp.Body.Token); err != nil {
		t.Errorf("Authorize rejected a freshly issued token: %v", err)
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	db, handler := setupAuth(t)
	seedUser(t, db, "admin@srishtithefarm.com", "admin123", "admin", true)

	req := LoginRequest{}
	req.Body.Email = "admin@srishtithefarm.com"
	req.Body.Password = "not-the-password"

	_, err := handler.HandleLogin(context.Background(), &req)
	if err == nil {
		t.Fatal("expected wrong password to be rejected")
	}
	if status := loginStatus(t, err); status != 401 {
		t.Errorf("expected 401, got %d", status)
	}
}

func TestHandleLogin_UnknownEmail(t *testing.T) {
	_, handler := setupAuth(t)

	req := LoginRequest{}
	req.Body.Email = "nobody@example.com"
	req.Body.Password = "whatever1"

	_, err := handler.HandleLogin(context.Background(), &req)
	if err == nil {
		t.Fatal("expected unknown email to be rejected")
	}
	if status := loginStatus(t, err); status != 401 {
		t.Errorf("expected 401, got %d", status)
	}
}

func TestHandleLogin_InactiveAccount(t *testing.T) {
	db, handler := setupAuth(t)
	seedUser(t, db, "old@srishtithefarm.com", "admin123", "admin", false)

	req := LoginRequest{}
	req.Body.Email = "old@srishtithefarm.com"
	req.Body.Password = "admin123"

	_, err := handler.HandleLogin(context.Background(), &req)
	if err == nil {
		t.Fatal("expected inactive account to be rejected")
	}
	if status := loginStatus(t, err); status != 403 {
		t.Errorf("expected 403, got %d", status)
	}
}
