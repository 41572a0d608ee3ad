package db

import (
	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Category{},
		&model.Province{},
		&model.Canton{},
		&model.Parish{},
		&model.Place{},
		&model.Route{},
		&model.RouteStop{},
		&model.SavedRoute{},
		&model.Favorite{},
		&model.Review{},
		&model.Event{},
	}
}

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := SeedCategories(DB); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// DefaultCategories are the tags the mobile client ships icons for.
var DefaultCategories = []model.Category{
	{Name: "Senderismo", IconURL: "directions_walk", ImageURL: "https://images.unsplash.com/photo-1551632811-561732d1e306?w=500"},
	{Name: "Cultura", IconURL: "museum", ImageURL: "https://images.unsplash.com/photo-1560264357-8d9202250f21?w=500"},
	{Name: "Gastronomía", IconURL: "restaurant", ImageURL: "https://images.unsplash.com/photo-1504674900247-0877df9cc836?w=500"},
	{Name: "Naturaleza", IconURL: "nature", ImageURL: "https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=500"},
	{Name: "Religioso", IconURL: "church", ImageURL: "https://images.unsplash.com/photo-1548625361-988230079b38?w=500"},
}

// SeedCategories creates the default categories that are missing by name.
func SeedCategories(db *gorm.DB) error {
	inserted := 0
	for _, c := range DefaultCategories {
		category := c
		result := db.Where(model.Category{Name: category.Name}).
			Attrs(model.Category{IconURL: category.IconURL, ImageURL: category.ImageURL}).
			FirstOrCreate(&category)
		if result.Error != nil {
			logger.Error("Failed to seed category", result.Error, map[string]interface{}{
				"category": c.Name,
			})
			return result.Error
		}
		inserted += int(result.RowsAffected)
	}

	logger.Info("Categories seeded", map[string]interface{}{
		"inserted": inserted,
		"total":    len(DefaultCategories),
	})
	return nil
}
