package main

import (
	"context"
	"log"

	"github.com/oraclehub-commits/brain-hub/internal/bootstrap"
	"github.com/oraclehub-commits/brain-hub/internal/config"
	"github.com/oraclehub-commits/brain-hub/internal/server"
	"github.com/oraclehub-commits/brain-hub/internal/tracer"
	"github.com/oraclehub-commits/brain-hub/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
