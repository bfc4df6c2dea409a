// @title Courtside API
// @version 1.0
// @description Backend for the Courtside sports coaching platform.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"courtside_backend/internal/app"
	"courtside_backend/internal/config"
	"courtside_backend/pkg/configwatcher"
	"courtside_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	migrate := flag.Bool("migrate", false, "force database migration on startup")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// Hot-reload the JWT settings, the only ones read per request.
	// Connections and services keep the config they were built with.
	go configwatcher.WatchConfig("configs/config.yaml", func(updated interface{}) {
		if nc, ok := updated.(*config.Config); ok {
			cfg.SetLiveJWT(nc.JWT)
			log.Println("Configuration reloaded")
		}
	})

	if *migrateOnly {
		log.Println("Database migration finished, exiting")
		return
	}

	application.Run()
}
