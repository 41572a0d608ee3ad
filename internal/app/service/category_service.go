package service

import (
	"errors"
	"strings"

	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/internal/app/repository"
	apperrors "github.com/rutasloja/rutas-backend/internal/errors"
	"github.com/rutasloja/rutas-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrCategoryExists = errors.New("category already exists")

type CategoryService interface {
	ListCategories() ([]model.Category, error)
	GetCategory(id uint) (*model.Category, error)
	CreateCategory(name, iconURL, imageURL string) (*model.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *categoryService) GetCategory(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) CreateCategory(name, iconURL, imageURL string) (*model.Category, error) {
	category := &model.Category{
		Name:     strings.TrimSpace(name),
		IconURL:  iconURL,
		ImageURL: imageURL,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}

	logger.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return category, nil
}

// loadCategories resolves every id or fails with ErrUnknownCategory.
// Repeated ids count once.
func loadCategories(repo repository.CategoryRepository, ids []uint) ([]model.Category, error) {
	unique := uniqueIDs(ids)
	categories, err := repo.FindByIDs(unique)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(unique) {
		logger.Warn("Unknown category referenced", map[string]interface{}{
			"category_ids": ids,
			"found":        len(categories),
		})
		return nil, ErrUnknownCategory
	}
	return categories, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
