package app

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/notredoo/videogames-dw/pkg/warehouse"
	"github.com/notredoo/videogames-dw/pkg/warehouse/services"
	"github.com/notredoo/videogames-dw/util"
)

type ETLWorker interface {
	Start()
	RunETL() *warehouse.RunReport
	Close()
}

type etlWorker struct {
	dbPool           *pgxpool.Pool
	WarehouseService *services.Service
}

func NewETLWorker() ETLWorker {
	return &etlWorker{dbPool: nil, WarehouseService: nil}
}

func (w *etlWorker) Start() {
	dbPool, err := pgxpool.Connect(context.Background(), WarehouseDSN())
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error initializating the application: unable to connect to database: %v\n", err)
		os.Exit(1)
	}

	w.WarehouseService = services.NewWarehouseService(dbPool)
	w.dbPool = dbPool
}

func (w *etlWorker) RunETL() *warehouse.RunReport {
	return w.WarehouseService.RunPipeline()
}

func (w *etlWorker) Close() {
	w.dbPool.Close()
}

// WarehouseDSN builds the connection string from the environment.
func WarehouseDSN() string {
	host := util.GetEnvVariable("HOST")
	port := util.GetEnvVariable("PORT")
	database := util.GetEnvVariable("DATABASE")
	dbUser := util.GetEnvVariable("DB_USER")
	dbPassword := util.GetEnvVariable("DB_PASSWORD")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&timezone=UTC", dbUser, dbPassword, host, port, database)
}
