package auth

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/srishti-farm/farmstay-api/internal/config"
	"github.com/srishti-farm/farmstay-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

type LoginRequest struct {
	Body struct {
		Email    string `json:"email" format:"email" doc:"Admin email"`
		Password string `json:"password" minLength:"6" doc:"Admin password"`
	}
}

type LoginResponse struct {
	Body struct {
		Token string `json:"token"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
}

func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginRequest) (*LoginResponse, error) {
	var user models.User
	if err := h.db.Where("email = ?", input.Body.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, huma.Error401Unauthorized("Invalid email or password")
		}
		return nil, huma.Error500InternalServerError("Database error")
	}

	if !user.IsActive {
		return nil, huma.Error403Forbidden("Account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Body.Password)); err != nil {
		return nil, huma.Error401Unauthorized("Invalid email or password")
	}

	token, err := h.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	res := &LoginResponse{}
	res.Body.Token = token
	res.Body.Email = user.Email
	res.Body.Role = user.Role
	return res, nil
}
