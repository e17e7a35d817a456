package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/donlucho/ferreteria-api/internal/auth"
	"github.com/donlucho/ferreteria-api/internal/config"
	"github.com/donlucho/ferreteria-api/internal/db"
	router "github.com/donlucho/ferreteria-api/internal/http"
	"github.com/donlucho/ferreteria-api/internal/http/handlers"
	rl "github.com/donlucho/ferreteria-api/internal/http/rate_limiter"
	"github.com/donlucho/ferreteria-api/internal/redissvc"
	"github.com/donlucho/ferreteria-api/internal/repo"
	"github.com/donlucho/ferreteria-api/internal/sales"
)

// @title Ferretería Don Lucho API
// @version 1.0
// @description REST API for the hardware store's inventory, sales, and accounting dashboard.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	auth.SetSecret(cfg.JWTSecret)

	go auth.StartRefreshTokenCleaner(30 * time.Minute)
	go rl.StartVisitorCleanupLoop()

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable at %s, caching disabled: %v", cfg.RedisAddr, err)
	} else {
		defer rdb.Close()
		handlers.SetCache(redissvc.NewRedisService(rdb, ctx))
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("could not connect to database: ", err)
	}
	defer database.Close()

	productRepo := repo.NewPostgresProductRepository(database)
	saleRepo := repo.NewPostgresSaleRepository(database)
	movementRepo := repo.NewPostgresMovementRepository(database)
	alertRepo := repo.NewPostgresAlertRepository(database)

	handlers.SetProductRepo(productRepo)
	handlers.SetSaleRepo(saleRepo)
	handlers.SetMovementRepo(movementRepo)
	handlers.SetAlertRepo(alertRepo)
	handlers.SetSupplierRepo(repo.NewPostgresSupplierRepository(database))
	handlers.SetActionLogRepo(repo.NewPostgresActionLogRepository(database))
	handlers.SetAccountingRepo(repo.NewPostgresAccountingRepository(database))
	handlers.SetUserRepo(repo.NewPostgresUserRepository(database))
	handlers.SetSalePoster(sales.NewPoster(productRepo, saleRepo, movementRepo, alertRepo))

	r := router.NewRouter()
	log.Printf("server running on %s", cfg.ServerAddr)
	if err := http.ListenAndServe(cfg.ServerAddr, r); err != nil {
		log.Fatal(err)
	}
}
