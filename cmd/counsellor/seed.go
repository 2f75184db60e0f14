package main

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/akshay/uni-counsellor/internal/config"
	"github.com/akshay/uni-counsellor/internal/db"
	"github.com/akshay/uni-counsellor/internal/unidata"
)

// defaultSeedCountries covers the destinations students ask about most.
var defaultSeedCountries = []string{
	"United States",
	"United Kingdom",
	"Canada",
	"Australia",
	"Germany",
	"Ireland",
	"Netherlands",
	"Singapore",
}

var (
	seedCountries   []string
	seedEnrich      bool
	seedConcurrency int
	seedPerCountry  int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the university catalog from the public universities API",
	Long:  "Fetch universities for a list of countries from the Hipolabs universities API and upsert them into the catalog, optionally enriching each entry from its homepage.",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringSliceVar(&seedCountries, "countries", defaultSeedCountries, "Countries to seed")
	seedCmd.Flags().BoolVar(&seedEnrich, "enrich", false, "Fetch each university homepage for logo metadata")
	seedCmd.Flags().IntVar(&seedConcurrency, "concurrency", 4, "Number of countries fetched in parallel")
	seedCmd.Flags().IntVar(&seedPerCountry, "per-country", 0, "Cap on universities per country (0 = no cap)")

	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadAppConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	client := unidata.NewClient(nil)

	var seeded atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(seedConcurrency)

	for _, country := range seedCountries {
		country := country
		g.Go(func() error {
			n, err := seedCountry(gctx, database, client, country)
			if err != nil {
				return fmt.Errorf("seeding %s: %w", country, err)
			}
			seeded.Add(int64(n))
			log.Printf("Seeded %d universities for %s", n, country)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("Seeded %d universities across %d countries\n", seeded.Load(), len(seedCountries))
	return nil
}

func seedCountry(ctx context.Context, database *db.DB, client *unidata.Client, country string) (int, error) {
	records, err := client.SearchByCountry(ctx, country)
	if err != nil {
		return 0, err
	}
	if seedPerCountry > 0 && len(records) > seedPerCountry {
		records = records[:seedPerCountry]
	}

	count := 0
	for _, rec := range records {
		university := rec.ToUniversity()

		if seedEnrich && university.Website != "" {
			enrichment, err := client.EnrichFromHomepage(ctx, university.Website)
			if err != nil {
				// Homepages are flaky; an unreachable one never fails the seed.
				log.Printf("Skipping enrichment for %s: %v", university.Name, err)
			} else {
				enrichment.Apply(&university)
			}
		}

		if _, err := database.UpsertUniversity(ctx, &university); err != nil {
			return count, fmt.Errorf("upserting %s: %w", university.Name, err)
		}
		count++
	}
	return count, nil
}
