package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"mood-dining-service/internal/adapters/cache"
	"mood-dining-service/internal/adapters/google"
	"mood-dining-service/internal/adapters/mood"
	"mood-dining-service/internal/adapters/repositories"
	"mood-dining-service/internal/api"
	"mood-dining-service/internal/config"
	"mood-dining-service/internal/platform/db"
	"mood-dining-service/internal/ports"
	"mood-dining-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Google Maps, Redis, Postgres) behind ports and
// starts the HTTP server. Optional collaborators degrade to nil / offline
// implementations here rather than branching inside the adapters.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	cacheTTL := time.Duration(config.GetInt("SEARCH_CACHE_TTL_SECONDS", 300)) * time.Second

	mapsKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if strings.TrimSpace(mapsKey) == "" {
		log.Fatal("GOOGLE_MAPS_API_KEY is required")
	}

	client, err := google.NewClient(mapsKey)
	if err != nil {
		log.Fatal(err)
	}
	places := google.NewPlacesClient(client)
	directions := google.NewDirectionsClient(client)

	// The generative converter needs its own key; without one the keyword
	// table still produces usable tags.
	var converter ports.MoodConverter
	if key := os.Getenv("GENERATIVE_API_KEY"); strings.TrimSpace(key) != "" {
		converter, err = mood.NewConverter(key)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		log.Println("GENERATIVE_API_KEY not set, using keyword mood conversion")
		converter = mood.NewKeywordConverter()
	}

	// Restaurant searches are the hot path; cache them when Redis is around.
	var restaurants ports.RestaurantSearch = places
	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		restaurants = cache.NewRedisSearchCache(rdb, places, cacheTTL)
	}

	// Search history is optional; without a database searches simply are
	// not recorded.
	var history ports.SearchHistory
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		sqlDB, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer sqlDB.Close()

		if err := repositories.InitSchema(sqlDB); err != nil {
			log.Fatal(err)
		}
		history = repositories.NewPostgresSearchHistory(sqlDB)
	}

	locator := services.NewStationLocator(places)
	expander := services.NewStationRangeExpander(directions, places)
	fanout := services.NewStationRestaurantFanout(restaurants)
	search := services.NewSearchService(locator, expander, fanout, restaurants, history)

	router := api.NewRouter(search, converter)

	// Timeouts are tuned for cold-cache station-range searches (several
	// upstream calls per request).
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
