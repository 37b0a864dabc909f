package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/hjyoon/storefront-backend/config"
	"github.com/hjyoon/storefront-backend/internal/app/model"
	"github.com/hjyoon/storefront-backend/internal/app/service"
	"github.com/hjyoon/storefront-backend/pkg/catalog"
	"github.com/xuri/excelize/v2"
)

// Offline export of the product feed to an xlsx snapshot, optionally
// narrowed with the same filter rules the API applies.
func main() {
	var (
		out      = flag.String("out", "catalog.xlsx", "output xlsx path")
		category = flag.String("category", model.CategoryAll, "category filter, 'all' for every category")
		maxPrice = flag.Float64("max-price", 0, "maximum price, 0 for unbounded")
		search   = flag.String("search", "", "title substring filter")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	client, err := catalog.NewClient(catalog.Config{
		BaseURL:      cfg.Catalog.BaseURL,
		FetchTimeout: cfg.Catalog.FetchTimeout,
	})
	if err != nil {
		log.Fatal("Failed to create catalog client:", err)
	}

	fmt.Printf("Fetching catalog from %s\n", cfg.Catalog.BaseURL)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Catalog.FetchTimeout)
	defer cancel()

	products, err := client.FetchProducts(ctx)
	if err != nil {
		log.Fatal("Failed to fetch catalog:", err)
	}

	filtered := service.FilterProducts(products, *category, *maxPrice, *search)
	fmt.Printf("Fetched %d products, %d after filters\n", len(products), len(filtered))

	if err := writeXLSX(*out, filtered); err != nil {
		log.Fatal("Failed to write XLSX:", err)
	}
	fmt.Printf("Wrote %s\n", *out)
}

func writeXLSX(path string, products []model.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Catalog"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	headers := []interface{}{"ID", "Title", "Price", "Category", "Image", "Rating", "Reviews"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}

	for i, p := range products {
		var rate float64
		var reviews int
		if p.Rating != nil {
			rate = p.Rating.Rate
			reviews = p.Rating.Count
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{p.ID, p.Title, p.Price, p.Category, p.Image, rate, reviews}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
