package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dmaier/beerlog-backend/config"
	"github.com/dmaier/beerlog-backend/internal/app/model"
	"github.com/dmaier/beerlog-backend/internal/app/repository"
	"github.com/dmaier/beerlog-backend/internal/db"
)

// Imports a beer catalog from an XLSX sheet with two columns: brewery
// name and beer name. Breweries are created on first sight, beers are
// linked to them.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	breweryRepo := repository.NewBreweryRepository(db.GetDB())
	beerRepo := repository.NewBeerRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	catalog, err := readCatalogFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	total := 0
	for _, beers := range catalog {
		total += len(beers)
	}
	fmt.Printf("Breweries to import: %d, beers to import: %d\n", len(catalog), total)

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imported := 0
	for breweryName, beerNames := range catalog {
		brewery, err := breweryRepo.FindOne(nil, breweryName)
		if err != nil {
			brewery = &model.Brewery{Name: breweryName}
			if err := breweryRepo.Create(brewery); err != nil {
				log.Fatalf("Failed to create brewery %q: %v", breweryName, err)
			}
		}

		for _, beerName := range beerNames {
			beer := &model.Beer{
				Name:      beerName,
				Company:   brewery.Name,
				CompanyID: brewery.ID,
			}
			if err := beerRepo.Create(beer); err != nil {
				fmt.Printf("Skipping beer %q: %v\n", beerName, err)
				continue
			}
			imported++
		}
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total beers imported: %d\n", imported)
}

// readCatalogFromXLSX maps brewery names to their beer names. The first
// row is treated as a header.
func readCatalogFromXLSX(filePath string) (map[string][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	catalog := make(map[string][]string)
	seen := make(map[string]bool)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 2 {
			skippedCount++
			continue
		}

		breweryName := strings.TrimSpace(row[0])
		beerName := strings.TrimSpace(row[1])
		if breweryName == "" || beerName == "" {
			skippedCount++
			continue
		}

		key := breweryName + "\x00" + beerName
		if seen[key] {
			skippedCount++
			continue
		}
		seen[key] = true

		catalog[breweryName] = append(catalog[breweryName], beerName)
	}

	if skippedCount > 0 {
		fmt.Printf("Skipped rows: %d\n", skippedCount)
	}

	return catalog, nil
}
