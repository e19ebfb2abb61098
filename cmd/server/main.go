package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Quill/internal/api/middleware"
	"Quill/internal/api/routes"
	"Quill/internal/cache"
	"Quill/internal/core/admin"
	"Quill/internal/core/posts"
	mongoRepo "Quill/internal/db/mongo"
	"Quill/internal/search"
)

func main() {
	// All configuration is read here and injected into constructors;
	// nothing below main touches the environment.
	adminPass := os.Getenv("ADMIN_PASS")
	if adminPass == "" {
		log.Fatal("ADMIN_PASS must be set")
	}

	signKey := os.Getenv("COOKIE_SIGN_KEY")
	if signKey == "" {
		log.Fatal("COOKIE_SIGN_KEY must be set")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "blog"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	esURL := os.Getenv("ELASTICSEARCH_URL")
	if esURL == "" {
		esURL = "http://localhost:9200"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	log.Println("Connected to Redis")

	esClient, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{esURL}})
	if err != nil {
		log.Fatal("Failed to create Elasticsearch client:", err)
	}

	postIndex := search.NewPostIndex(esClient)
	if err := postIndex.EnsureIndex(ctx); err != nil {
		log.Fatal("Failed to create search index:", err)
	}
	log.Println("Search index ready")

	// Wire repositories and services
	postRepo := mongoRepo.NewPostRepository(client.Database(dbName))
	postCache := cache.NewPostCache(redisClient)
	postService := posts.NewPostService(postRepo, postCache, postIndex)
	adminService := admin.NewService(adminPass)

	store := middleware.NewSessionStore(signKey)
	gate := middleware.NewLoginGate(store)

	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	// Rate limiting: 100 requests per minute per IP
	rateLimiter := middleware.NewRateLimiter(100, 1*time.Minute)
	r.Use(rateLimiter.Middleware)

	routes.RegisterAuthRoutes(r, adminService, store)
	routes.RegisterPostRoutes(r, postService, gate)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	log.Printf("Server listening on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
