package main

import (
	"context"
	_ "embed"
	"time"

	"github.com/tu-usuario/pos-retail/internal/infrastructure/postgres"
	"github.com/tu-usuario/pos-retail/pkg/config"
	"github.com/tu-usuario/pos-retail/pkg/logger"
)

//go:embed schema.sql
var schema string

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}
	log.Info().Msg("esquema aplicado")
}
