package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"hos-planner-service/internal/adapters/cache"
	"hos-planner-service/internal/adapters/repositories"
	"hos-planner-service/internal/adapters/routing"
	"hos-planner-service/internal/api"
	"hos-planner-service/internal/config"
	"hos-planner-service/internal/platform/db"
	"hos-planner-service/internal/ports"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, ORS) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	pg, err := openPostgres()
	if err != nil {
		log.Fatal(err)
	}
	if pg != nil {
		defer pg.Close()
	}

	routeCache, geocodeCache, err := buildCaches(pg)
	if err != nil {
		log.Fatal(err)
	}

	provider, err := buildRouteProvider(routeCache, geocodeCache)
	if err != nil {
		log.Fatal(err)
	}

	store, err := buildTripStore(pg)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(provider, store)

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

// openPostgres connects when DATABASE_URL is set; a nil return with nil
// error means the deployment runs without Postgres.
func openPostgres() (*sql.DB, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		return nil, nil
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return pg, nil
}

// buildCaches backs the route and geocode caches with Postgres when
// available, otherwise with a local SQLite file.
func buildCaches(pg *sql.DB) (ports.RouteCache, ports.GeocodeCache, error) {
	if pg != nil {
		return cache.NewSQLRouteCache(pg), cache.NewSQLGeocodeCache(pg), nil
	}

	cachePath := config.Get("CACHE_DB_PATH", "data/cache.db")
	sdb, err := sql.Open("sqlite", cachePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite cache %q: %w", cachePath, err)
	}
	if err := cache.InitSqliteSchema(sdb); err != nil {
		return nil, nil, fmt.Errorf("init sqlite cache %q: %w", cachePath, err)
	}

	return cache.NewSqliteRouteCache(sdb), cache.NewSqliteGeocodeCache(sdb), nil
}

func buildRouteProvider(routeCache ports.RouteCache, geocodeCache ports.GeocodeCache) (ports.RouteProvider, error) {
	backend := config.Get("ROUTING_BACKEND", "ors")
	switch backend {
	case "ors":
		orsKey := os.Getenv("ORS_API_KEY")
		if strings.TrimSpace(orsKey) == "" {
			return nil, fmt.Errorf("ORS_API_KEY is required when ROUTING_BACKEND=ors")
		}
		return routing.NewORSRouteProvider(orsKey, routeCache, geocodeCache)
	case "haversine":
		return routing.NewHaversineRouteProvider(), nil
	default:
		return nil, fmt.Errorf("unknown ROUTING_BACKEND %q (want ors or haversine)", backend)
	}
}

func buildTripStore(pg *sql.DB) (ports.TripStore, error) {
	backend := config.Get("STORE_BACKEND", "postgres")
	switch backend {
	case "postgres":
		if pg == nil {
			return nil, fmt.Errorf("STORE_BACKEND=postgres requires DATABASE_URL")
		}
		return repositories.NewPostgresTripStore(pg), nil
	case "redis":
		client, err := connectRedis()
		if err != nil {
			return nil, err
		}
		return repositories.NewRedisTripStore(client), nil
	case "tiered":
		if pg == nil {
			return nil, fmt.Errorf("STORE_BACKEND=tiered requires DATABASE_URL")
		}
		client, err := connectRedis()
		if err != nil {
			return nil, err
		}
		primary := repositories.NewPostgresTripStore(pg)
		secondary := repositories.NewRedisTripStore(client)
		return repositories.NewTieredTripStore(primary, secondary), nil
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q (want postgres, redis, or tiered)", backend)
	}
}

func connectRedis() (*redis.Client, error) {
	addr := config.Get("REDIS_ADDR", "localhost:6379")
	return db.ConnectRedis(addr, os.Getenv("REDIS_PASSWORD"))
}
