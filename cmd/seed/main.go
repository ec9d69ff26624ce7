package main

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/seed"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if cfg.Environment == config.Production {
		log.Fatal("refusing to seed a production database")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	if _, err := seed.Run(context.Background(), db); err != nil {
		log.WithError(err).Fatal("seeding failed")
	}
}
