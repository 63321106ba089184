// cmd/tools/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"github.com/madeinfrance/mif-backend/internal/config"
	"github.com/madeinfrance/mif-backend/internal/database"
	"github.com/madeinfrance/mif-backend/internal/enrich"
	"github.com/madeinfrance/mif-backend/internal/geocode"
	"github.com/madeinfrance/mif-backend/internal/importer"
	"github.com/madeinfrance/mif-backend/internal/models"
	"github.com/madeinfrance/mif-backend/internal/services"
	"github.com/madeinfrance/mif-backend/internal/storefront"
)

func main() {
	app := &cli.App{
		Name:  "mif-tools",
		Usage: "batch jobs for the Made in France catalog",
		Commands: []*cli.Command{
			importCommand(),
			geocodeCommand(),
			enrichCommand(),
			detectCommand(),
			scrapeCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// setup loads configuration, opens the database and runs migrations, shared
// by every subcommand.
func setup() (*gorm.DB, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, cfg, nil
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "import the editorial spreadsheet (sectors, regions, labels, brands)",
		ArgsUsage: "<workbook.xlsx>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("usage: mif-tools import <workbook.xlsx>", 1)
			}

			db, _, err := setup()
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			defer database.Close(db)

			result, err := importer.New(db).Run(c.Args().First())
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			fmt.Printf("Imported %d sectors, %d regions, %d labels, %d brands (%d rows skipped)\n",
				result.Sectors, result.Regions, result.Labels, result.Brands, result.Skipped)
			return nil
		},
	}
}

func geocodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "geocode",
		Usage:     "backfill coordinates for brands with a city but no position",
		ArgsUsage: "[brand-slug]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "run over every brand with a city and no coordinates",
			},
		},
		Action: func(c *cli.Context) error {
			db, cfg, err := setup()
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			defer database.Close(db)

			runner := geocode.NewRunner(db, cfg.Geocoding)

			if c.Bool("all") {
				result, err := runner.Run()
				if err != nil {
					return cli.Exit(err.Error(), 1)
				}
				fmt.Printf("Geocoded %d/%d brands (%d skipped)\n", result.Updated, result.Processed, result.Skipped)
				return nil
			}

			if c.NArg() != 1 {
				return cli.Exit("usage: mif-tools geocode <brand-slug> or --all", 1)
			}

			result, err := runner.RunBrand(c.Args().First())
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			fmt.Printf("Geocoded %d/%d brands (%d skipped)\n", result.Updated, result.Processed, result.Skipped)
			return nil
		},
	}
}

func enrichCommand() *cli.Command {
	return &cli.Command{
		Name:  "enrich",
		Usage: "fill in tags and materials for untagged active products",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "batch",
				Usage: "override the configured batch size",
			},
		},
		Action: func(c *cli.Context) error {
			db, cfg, err := setup()
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			defer database.Close(db)

			if c.Int("batch") > 0 {
				cfg.AI.BatchSize = c.Int("batch")
			}

			products := services.NewProductService(db)
			result, err := enrich.NewPipeline(products, cfg.AI).Run()
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			fmt.Printf("Enriched %d/%d products (%d failed)\n", result.Enriched, result.Processed, result.Failed)
			return nil
		},
	}
}

func detectCommand() *cli.Command {
	return &cli.Command{
		Name:      "detect",
		Usage:     "detect the storefront platform behind brand websites",
		ArgsUsage: "[brand-slug]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "run over every active brand without a detected source",
			},
		},
		Action: func(c *cli.Context) error {
			db, cfg, err := setup()
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			defer database.Close(db)

			syncer := storefront.NewSyncer(db, services.NewProductService(db), cfg.Scraper)

			if c.Bool("all") {
				result, err := syncer.DetectAll()
				if err != nil {
					return cli.Exit(err.Error(), 1)
				}
				fmt.Printf("Detected %d/%d storefronts\n", result.Detected, result.Processed)
				return nil
			}

			if c.NArg() != 1 {
				return cli.Exit("usage: mif-tools detect <brand-slug> or --all", 1)
			}

			brand, err := loadBrand(db, c.Args().First())
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			source, err := syncer.DetectBrand(brand)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			if source == "" {
				fmt.Printf("%s: no storefront detected\n", brand.Slug)
			} else {
				fmt.Printf("%s: %s\n", brand.Slug, source)
			}
			return nil
		},
	}
}

func scrapeCommand() *cli.Command {
	return &cli.Command{
		Name:      "scrape",
		Usage:     "mirror storefront catalogs into the products table",
		ArgsUsage: "[brand-slug]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "scrape every brand with a detected storefront",
			},
		},
		Action: func(c *cli.Context) error {
			db, cfg, err := setup()
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			defer database.Close(db)

			syncer := storefront.NewSyncer(db, services.NewProductService(db), cfg.Scraper)

			if c.Bool("all") {
				result, err := syncer.SyncAll()
				if err != nil {
					return cli.Exit(err.Error(), 1)
				}
				fmt.Printf("Scraped: %d new, %d updated, %d removed\n", result.Inserted, result.Updated, result.Removed)
				return nil
			}

			if c.NArg() != 1 {
				return cli.Exit("usage: mif-tools scrape <brand-slug> or --all", 1)
			}

			brand, err := loadBrand(db, c.Args().First())
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			result, err := syncer.SyncBrand(brand)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			fmt.Printf("%s: %d new, %d updated, %d removed\n", brand.Slug, result.Inserted, result.Updated, result.Removed)
			return nil
		},
	}
}

func loadBrand(db *gorm.DB, slug string) (*models.Brand, error) {
	var brand models.Brand
	if err := db.Where("slug = ?", slug).First(&brand).Error; err != nil {
		return nil, fmt.Errorf("brand %q not found", slug)
	}
	return &brand, nil
}
