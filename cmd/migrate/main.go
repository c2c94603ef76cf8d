// Command migrate aplica el esquema y carga los datos iniciales (admin y
// catálogo de empresas partner). Idempotente: correrlo dos veces no duplica.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/tu-usuario/affiliate-portal/internal/infrastructure/postgres"
	"github.com/tu-usuario/affiliate-portal/pkg/config"
	"github.com/tu-usuario/affiliate-portal/pkg/logger"
)

func main() {
	skipSeed := flag.Bool("skip-seed", false, "solo aplicar el esquema, sin datos iniciales")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}
	log.Info().Msg("esquema aplicado")

	if *skipSeed {
		return
	}
	if err := postgres.Seed(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("cargar datos iniciales")
	}
	log.Info().Msg("datos iniciales cargados")
}
