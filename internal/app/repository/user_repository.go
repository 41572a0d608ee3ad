package repository

import (
	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByLogin(identifier string) (*model.User, error)
	UpdateRole(id uint, role model.UserRole) error
	UpdatePasswordHash(id uint, hash string) error
	Stats(userID uint) (*model.UserStats, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"username": user.Username,
		"email":    user.Email,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"username": user.Username,
			"email":    user.Email,
		})
		return err
	}

	logger.Debug("User created in database", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	logger.Debug("Finding user by ID in database", map[string]interface{}{
		"user_id": id,
	})

	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		logger.Error("Failed to find user by ID in database", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		logger.Debug("User not found by email", map[string]interface{}{
			"email": email,
		})
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateRole(id uint, role model.UserRole) error {
	if err := r.db.Model(&model.User{}).Where("id = ?", id).Update("role", role).Error; err != nil {
		logger.Error("Failed to update user role", err, map[string]interface{}{
			"user_id": id,
			"role":    role,
		})
		return err
	}
	return nil
}

func (r *userRepository) UpdatePasswordHash(id uint, hash string) error {
	if err := r.db.Model(&model.User{}).Where("id = ?", id).Update("password_hash", hash).Error; err != nil {
		logger.Error("Failed to update password hash", err, map[string]interface{}{
			"user_id": id,
		})
		return err
	}
	return nil
}

// FindByLogin matches either the username or the email.
func (r *userRepository) FindByLogin(identifier string) (*model.User, error) {
	logger.Debug("Finding user by login identifier", map[string]interface{}{
		"identifier": identifier,
	})

	var user model.User
	err := r.db.Where("username = ? OR email = ?", identifier, identifier).
		Order("id ASC").
		First(&user).Error
	if err != nil {
		logger.Debug("User not found by login identifier", map[string]interface{}{
			"identifier": identifier,
		})
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Stats(userID uint) (*model.UserStats, error) {
	var stats model.UserStats

	if err := r.db.Model(&model.Favorite{}).
		Where("user_id = ? AND type = ?", userID, model.FavoriteTypeFavorite).
		Count(&stats.Favorites).Error; err != nil {
		logger.Error("Failed to count favorites", err, map[string]interface{}{"user_id": userID})
		return nil, err
	}
	if err := r.db.Model(&model.Favorite{}).
		Where("user_id = ? AND type = ?", userID, model.FavoriteTypeVisited).
		Count(&stats.Visited).Error; err != nil {
		logger.Error("Failed to count visited places", err, map[string]interface{}{"user_id": userID})
		return nil, err
	}
	if err := r.db.Model(&model.Route{}).
		Where("user_id = ?", userID).
		Count(&stats.Routes).Error; err != nil {
		logger.Error("Failed to count routes", err, map[string]interface{}{"user_id": userID})
		return nil, err
	}

	logger.Debug("User stats computed", map[string]interface{}{
		"user_id":   userID,
		"favorites": stats.Favorites,
		"visited":   stats.Visited,
		"routes":    stats.Routes,
	})
	return &stats, nil
}
