package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"clean-energy-predictor/internal/storage"
)

func main() {
	var (
		dataPath = flag.String("data", "./data", "Data directory path")
		since    = flag.Duration("since", 24*time.Hour, "Show predictions newer than this")
	)
	flag.Parse()

	fmt.Printf("Inspecting prediction history in: %s\n", *dataPath)

	// Open storage
	store, err := storage.New(*dataPath)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	total, err := store.Count()
	if err != nil {
		log.Fatalf("Failed to count predictions: %v", err)
	}
	fmt.Printf("Total predictions stored: %d\n", total)

	end := time.Now()
	start := end.Add(-*since)
	records, err := store.PredictionsInRange(start, end)
	if err != nil {
		log.Fatalf("Failed to fetch predictions: %v", err)
	}

	fmt.Printf("\nPredictions since %s:\n", start.Format(time.RFC3339))
	perRole := map[string]int{}
	var sum float64
	for _, r := range records {
		fmt.Printf("%s  %-16s  %s  unmet=%.1f load=%.1f hour=%d gas=%.2f\n",
			r.Timestamp.Format(time.RFC3339), r.Role.Key(), r.FormattedPrice,
			r.Features.UnmetKWh, r.Features.LoadKWh, r.Features.Hour, r.Features.NaturalGasPrice)
		perRole[r.Role.Key()]++
		sum += r.Price
	}

	if len(records) == 0 {
		fmt.Println("No predictions in range")
		return
	}

	fmt.Printf("\n%d predictions, mean price $%.4f per kWh\n", len(records), sum/float64(len(records)))
	for role, n := range perRole {
		fmt.Printf("  %-16s %d\n", role, n)
	}
}
