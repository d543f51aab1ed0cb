package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"hos-trip-service/internal/adapters/cache"
	"hos-trip-service/internal/adapters/repositories"
	"hos-trip-service/internal/adapters/route"
	"hos-trip-service/internal/api"
	"hos-trip-service/internal/config"
	pgdb "hos-trip-service/internal/platform/db"
	"hos-trip-service/internal/ports"
	"hos-trip-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, ORS) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	port := config.Get("PORT", "8080")

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema on startup for local runs.
	if err := repositories.InitSchema(db); err != nil {
		log.Fatal(err)
	}

	fallback := route.NewHaversineRouteProvider()

	// Without an ORS key the service still plans trips, using the geometric
	// estimate for every route.
	var provider ports.RouteProvider = fallback
	var geometricFallback ports.RouteProvider

	orsKey := os.Getenv("ORS_API_KEY")
	if strings.TrimSpace(orsKey) != "" {
		// ORS results are cached persistently to avoid repeated
		// geocode/directions calls: locally in SQLite, or in Postgres when
		// DATABASE_URL points at a cache shared across instances
		// (see cmd/dbtool).
		var legCache ports.RouteLegCache = cache.NewSqliteRouteCache(db)
		var geocodeCache ports.GeocodeCache = cache.NewSqliteGeocodeCache(db)

		if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
			pg, err := pgdb.Open(databaseURL)
			if err != nil {
				log.Fatal(err)
			}
			defer pg.Close()

			legCache = cache.NewSQLRouteCache(pg)
			geocodeCache = cache.NewSQLGeocodeCache(pg)
			log.Println("Using shared Postgres route/geocode cache")
		}

		ors, err := route.NewORSRouteProvider(orsKey, legCache, geocodeCache)
		if err != nil {
			log.Fatal(err)
		}
		provider = ors
		geometricFallback = fallback
	} else {
		log.Println("ORS_API_KEY not set; route distances will be geometric estimates")
	}

	repo := repositories.NewSqliteTripRepository(db)
	router := api.NewRouter(repo, provider, geometricFallback, services.DefaultHOSRules())

	// Timeouts are tuned for cold-cache route planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}
