package main

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"go-shop/auth"
	"go-shop/config"
	"go-shop/controllers"
	"go-shop/db"
	"go-shop/mail"
	"go-shop/middleware"
	"go-shop/routes"
	"go-shop/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("load config")
	}

	log := newLogger(cfg.LogLevel)

	ctx := context.Background()
	client, err := db.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("disconnect from MongoDB")
		}
	}()

	database := client.Database(cfg.Mongo.Database)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}
	log.Info().Str("uri", cfg.Mongo.URI).Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	tokens := auth.NewTokenService(cfg.JWT.Secret)
	mailer := mail.NewMailer(cfg.SendGrid, log)

	users := store.NewUserStore(database)
	categories := store.NewCategoryStore(database)
	products := store.NewProductStore(database)
	orders := store.NewOrderStore(database)

	userController := controllers.NewUserController(users, tokens, log)
	categoryController := controllers.NewCategoryController(categories, log)
	productController := controllers.NewProductController(products, categories, log)
	orderController := controllers.NewOrderController(orders, products, users, mailer, log)

	router := mux.NewRouter()
	router.Use(middleware.Recover(log), middleware.RequestLogger(log))
	routes.Register(router, tokens, userController, categoryController, productController, orderController)

	log.Info().Str("addr", cfg.HTTP.Addr).Msg("server listening")
	if err := http.ListenAndServe(cfg.HTTP.Addr, router); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
