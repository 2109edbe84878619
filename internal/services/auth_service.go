// internal/services/auth_service.go
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/soutech/shop-backend/internal/models"
	"github.com/soutech/shop-backend/internal/utils"
)

// AuthService is the credential store: accounts, password checks and
// bearer tokens.
type AuthService struct {
	db  *gorm.DB
	jwt *utils.JWTManager
}

type SignupRequest struct {
	Name       string  `json:"name" validate:"required,not_blank,min=2,max=120"`
	Email      string  `json:"email" validate:"required,email,max=255"`
	Password   string  `json:"password" validate:"required,min=6,max=128"`
	DocType    *string `json:"doc_type,omitempty" validate:"omitempty,oneof=CPF CNPJ"`
	DocNumber  *string `json:"doc_number,omitempty" validate:"omitempty,max=20"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	CEP        *string `json:"cep,omitempty" validate:"omitempty,max=9"`
	Address    *string `json:"address,omitempty" validate:"omitempty,max=255"`
	Number     *string `json:"number,omitempty" validate:"omitempty,max=30"`
	Complement *string `json:"complement,omitempty" validate:"omitempty,max=120"`
	District   *string `json:"district,omitempty" validate:"omitempty,max=120"`
	City       *string `json:"city,omitempty" validate:"omitempty,max=120"`
	State      *string `json:"state,omitempty" validate:"omitempty,uf"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // in seconds
	User        *models.User `json:"user"`
}

func NewAuthService(db *gorm.DB, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		db:  db,
		jwt: jwtManager,
	}
}

// CreateUser registers a customer account.
func (s *AuthService) CreateUser(req *SignupRequest) (*models.User, error) {
	return s.createUser(req, false)
}

func (s *AuthService) createUser(req *SignupRequest, isAdmin bool) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewError(KindValidation, "validation failed", err)
	}

	email := models.NormalizeEmail(req.Email)

	// Check-then-insert; the unique index is the final guard.
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, internalError("database error", err)
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	user := &models.User{
		Name:       strings.TrimSpace(req.Name),
		Email:      email,
		IsAdmin:    isAdmin,
		DocType:    models.OptionalString(req.DocType),
		DocNumber:  models.OptionalString(req.DocNumber),
		Phone:      models.OptionalString(req.Phone),
		CEP:        models.OptionalString(req.CEP),
		Address:    models.OptionalString(req.Address),
		Number:     models.OptionalString(req.Number),
		Complement: models.OptionalString(req.Complement),
		District:   models.OptionalString(req.District),
		City:       models.OptionalString(req.City),
		State:      models.NormalizeState(req.State),
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, internalError("failed to hash password", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, internalError("failed to create user", err)
	}

	return user, nil
}

// Authenticate returns the same error for an unknown email and a wrong
// password.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", models.NormalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, internalError("database error", err)
	}

	if err := user.CheckPassword(password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

func (s *AuthService) IssueSessionToken(user *models.User) (*TokenResponse, error) {
	token, err := s.jwt.GenerateJWT(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, internalError("failed to generate access token", err)
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.jwt.TTL().Seconds()),
		User:        user,
	}, nil
}

func (s *AuthService) Login(req *LoginRequest) (*TokenResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewError(KindValidation, "validation failed", err)
	}

	user, err := s.Authenticate(req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return s.IssueSessionToken(user)
}

// ResolveToken maps a bearer token to the live account it was issued for.
func (s *AuthService) ResolveToken(token string) (*models.User, error) {
	claims, err := s.jwt.ValidateJWT(token)
	if err != nil {
		return nil, NewError(KindUnauthenticated, "invalid or expired token", err)
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, NewError(KindUnauthenticated, "invalid or expired token", err)
	}

	return s.GetUserByID(userID)
}

func (s *AuthService) RequireAdmin(user *models.User) error {
	if user == nil || !user.IsAdmin {
		return ErrForbidden
	}
	return nil
}

func (s *AuthService) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, internalError("database error", err)
	}
	return &user, nil
}
