// internal/services/user_service.go
package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/soutech/shop-backend/internal/models"
	"github.com/soutech/shop-backend/internal/utils"
)

// UserService backs the admin user screens.
type UserService struct {
	db   *gorm.DB
	auth *AuthService
}

type AdminCreateUserRequest struct {
	SignupRequest
	IsAdmin bool `json:"is_admin"`
}

type AdminUpdateUserRequest struct {
	ToggleAdmin *bool `json:"toggle_admin"`
}

func NewUserService(db *gorm.DB, auth *AuthService) *UserService {
	return &UserService{
		db:   db,
		auth: auth,
	}
}

// ListUsers returns every account, newest first. A nil params returns the
// whole table.
func (s *UserService) ListUsers(params *utils.PaginationParams) ([]models.User, int64, error) {
	var total int64
	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, internalError("failed to count users", err)
	}

	query := s.db.Order("created_at DESC, id DESC")
	if params != nil {
		query = utils.ApplyPagination(query, *params)
	}

	users := make([]models.User, 0)
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, internalError("failed to list users", err)
	}
	return users, total, nil
}

func (s *UserService) CreateUser(req *AdminCreateUserRequest) (*models.User, error) {
	return s.auth.createUser(&req.SignupRequest, req.IsAdmin)
}

// UpdateUser flips the admin flag when ToggleAdmin is true and otherwise
// leaves the account untouched.
func (s *UserService) UpdateUser(id uint, req *AdminUpdateUserRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(KindNotFound, "user not found", err)
		}
		return nil, internalError("database error", err)
	}

	if req.ToggleAdmin != nil && *req.ToggleAdmin {
		user.IsAdmin = !user.IsAdmin
		if err := s.db.Model(&user).Update("is_admin", user.IsAdmin).Error; err != nil {
			return nil, internalError("failed to update user", err)
		}
	}

	return &user, nil
}
