package db

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"idscan/internal/models"
)

var DB *gorm.DB

// Init connects to Postgres and migrates the schema. dsn may be empty, in
// which case the connection string is assembled from PG* environment
// variables with local-dev defaults.
func Init(dsn string) {
	if dsn == "" {
		dsn = resolveDSN()
	}
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("connection to db failed")
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get db from GORM")
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	log.Info().Msg("connected to database")

	if err = DB.AutoMigrate(&models.CardData{}); err != nil {
		log.Fatal().Err(err).Msg("automigration failed for CardData")
	}
	if err = DB.AutoMigrate(&models.Verification{}); err != nil {
		log.Fatal().Err(err).Msg("automigration failed for Verification")
	}
	if err = DB.AutoMigrate(&models.Admin{}); err != nil {
		log.Fatal().Err(err).Msg("automigration failed for Admin")
	}
}

// resolveDSN builds a Postgres DSN from PGHOST, PGPORT, PGUSER, PGPASSWORD,
// PGDATABASE and PGSSLMODE, falling back to local dev settings.
func resolveDSN() string {
	host := envOr("PGHOST", "localhost")
	port := envOr("PGPORT", "5432")
	user := envOr("PGUSER", "postgres")
	pass := envOr("PGPASSWORD", "postgres")
	name := envOr("PGDATABASE", "idscan")
	ssl := envOr("PGSSLMODE", "disable")
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, pass, name, ssl)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
