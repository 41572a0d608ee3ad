package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rutasloja/rutas-backend/config"
	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/internal/app/repository"
	"github.com/rutasloja/rutas-backend/internal/app/service"
	"github.com/rutasloja/rutas-backend/internal/db"
	"github.com/rutasloja/rutas-backend/internal/importer"
	"github.com/rutasloja/rutas-backend/pkg/logger"
)

func main() {
	yes := flag.Bool("y", false, "import without asking for confirmation")
	defaults := flag.Bool("defaults", false, "seed the built-in Loja hierarchy instead of a workbook")
	admin := flag.String("admin", "", "grant the admin role to this username or email")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: seed [-y] <hierarchy.xlsx>")
		fmt.Fprintln(os.Stderr, "       seed -defaults")
		fmt.Fprintln(os.Stderr, "       seed -admin <username|email>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if !*defaults && flag.NArg() < 1 && *admin == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	logger.Initialize(logger.Config{Level: "info", Format: "console", EnableColor: true})

	if *admin != "" {
		promote(cfg, *admin)
		if !*defaults && flag.NArg() < 1 {
			return
		}
	}

	tree := service.DefaultHierarchy()
	if !*defaults {
		filePath := flag.Arg(0)
		fmt.Printf("Reading XLSX file: %s\n", filePath)

		file, err := os.Open(filePath)
		if err != nil {
			log.Fatal("Failed to open XLSX:", err)
		}
		var stats importer.Stats
		tree, stats, err = importer.ReadHierarchy(file)
		file.Close()
		if err != nil {
			log.Fatal("Failed to read XLSX:", err)
		}
		fmt.Printf("Rows read: %d, skipped: %d, provinces: %d\n", stats.Rows, stats.Skipped, len(tree))
	}

	if !*yes {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	geoService := service.NewGeoService(repository.NewGeoRepository(db.GetDB()))
	result, err := geoService.SeedHierarchy(tree)
	if err != nil {
		log.Fatal("Failed to seed hierarchy:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Created provinces: %d, cantons: %d, parishes: %d\n", result.Provinces, result.Cantons, result.Parishes)
}

func promote(cfg *config.Config, login string) {
	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	authService := service.NewAuthService(repository.NewUserRepository(db.GetDB()), nil, cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	user, err := authService.SetRole(login, model.RoleAdmin)
	if err != nil {
		log.Fatal("Failed to grant admin role:", err)
	}
	fmt.Printf("User %s (id %d) is now an admin\n", user.Username, user.ID)
}
