package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/banshee-data/elevation.report/internal/api"
	"github.com/banshee-data/elevation.report/internal/db"
	"github.com/banshee-data/elevation.report/internal/ingest"
	"github.com/banshee-data/elevation.report/internal/transect"
	"github.com/banshee-data/elevation.report/internal/units"
	"github.com/banshee-data/elevation.report/internal/version"
)

const defaultDBFile = "survey_data.db"

var (
	listen        = flag.String("listen", ":8080", "Listen address")
	dbFile        = flag.String("db", defaultDBFile, "Path to the sqlite database")
	csvFile       = flag.String("csv", "", "CSV file of survey records to import at startup")
	earlyYear     = flag.Int("early-year", 2021, "Earlier survey year")
	lateYear      = flag.Int("late-year", 2024, "Later survey year")
	outputUnits   = flag.String("units", units.Meters, "Output units ("+units.GetValidUnitsString()+")")
	migrationsDir = flag.String("migrations", "migrations", "Path to schema migrations")
)

// Main
func main() {
	// .env is optional; flags keep their defaults when it is absent.
	_ = godotenv.Load()
	flag.Parse()

	if env := os.Getenv("ELEVATION_REPORT_DB"); env != "" && *dbFile == defaultDBFile {
		*dbFile = env
	}
	if env := os.Getenv("ELEVATION_REPORT_LISTEN"); env != "" && *listen == ":8080" {
		*listen = env
	}

	if *listen == "" {
		log.Fatal("Listen address is required")
	}
	if !units.IsValid(*outputUnits) {
		log.Fatalf("invalid units %q: valid units are %s", *outputUnits, units.GetValidUnitsString())
	}
	if *earlyYear >= *lateYear {
		log.Fatalf("early year %d must precede late year %d", *earlyYear, *lateYear)
	}

	log.Printf("elevation.report %s starting", version.Version)

	database, err := db.NewDB(*dbFile)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if err := database.MigrateUp(*migrationsDir); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if *csvFile != "" {
		result, err := ingest.ReadFile(*csvFile)
		if err != nil {
			log.Fatalf("Failed to ingest %s: %v", *csvFile, err)
		}
		if err := database.DeleteSurveyRecords(); err != nil {
			log.Fatalf("Failed to clear previous records: %v", err)
		}
		if err := database.InsertSurveyRecords(result.BatchID, result.Records); err != nil {
			log.Fatalf("Failed to store records: %v", err)
		}
		if err := database.RecordImportBatch(&db.ImportBatch{
			BatchID:      result.BatchID,
			Source:       *csvFile,
			RecordCount:  len(result.Records),
			SkippedCount: result.Skipped,
		}); err != nil {
			log.Fatalf("Failed to record import batch: %v", err)
		}
		log.Printf("imported %d records from %s (batch %s, %d rows skipped)",
			len(result.Records), *csvFile, result.BatchID, result.Skipped)
	}

	records, err := database.LoadSurveyRecords()
	if err != nil {
		log.Fatalf("Failed to load survey records: %v", err)
	}

	holder := api.NewSnapshotHolder()
	snap := transect.BuildSnapshot(records, *earlyYear, *lateYear)
	holder.Swap(snap)
	log.Printf("built snapshot: %d records, %d sites (%d vs %d)",
		len(records), len(snap.Sites), *earlyYear, *lateYear)

	server := api.NewServer(database, holder, api.Config{
		Units:     *outputUnits,
		CSVPath:   *csvFile,
		EarlyYear: *earlyYear,
		LateYear:  *lateYear,
	})

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// HTTP server goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()

		mux := http.NewServeMux()
		mux.Handle("/api/", http.StripPrefix("/api", api.LoggingMiddleware(server.ServeMux())))
		mux.Handle("/charts/", http.StripPrefix("/charts", api.LoggingMiddleware(server.ChartsMux())))
		mux.Handle("/metrics", api.MetricsHandler())

		httpServer := &http.Server{
			Addr:    *listen,
			Handler: mux,
		}

		// Start server in a goroutine so it doesn't block
		go func() {
			log.Printf("listening on %s", *listen)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start server: %v", err)
			}
		}()

		// Wait for context cancellation to shut down server
		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}

		log.Printf("HTTP server routine stopped")
	}()

	wg.Wait()
	log.Printf("Graceful shutdown complete")
}
