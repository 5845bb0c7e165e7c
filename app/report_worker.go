package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/joho/sqltocsv"
	"github.com/pkg/errors"

	"github.com/notredoo/videogames-dw/pkg/warehouse"
	"github.com/notredoo/videogames-dw/pkg/warehouse/queries"
	"github.com/notredoo/videogames-dw/pkg/warehouse/services"
)

type ReportWorker interface {
	Start()
	TotalRevenueByGenre() ([]warehouse.GenreRevenue, error)
	TotalRevenueByGamePerGenre(genre string) ([]warehouse.GameRevenue, error)
	RevenueByPlatformAndYear(years []int) ([]warehouse.PlatformRevenue, error)
	TopPlaytimeGames(genre, platform string) ([]warehouse.GamePlaytime, error)
	EsportsEcosystem() ([]warehouse.EcosystemValue, error)
	PlayerVsTeamEarnings() ([]warehouse.EarningsComparison, error)
	AvailableYears() ([]int, error)
	AvailableGenres() ([]string, error)
	AvailableGenresForRevenue() ([]string, error)
	AvailablePlatforms() ([]string, error)
	ExportTableCSV(w io.Writer, table string) error
	Close()
}

type reportWorker struct {
	dbPool           *pgxpool.Pool
	WarehouseService *services.Service
}

func NewReportWorker() ReportWorker {
	return &reportWorker{dbPool: nil, WarehouseService: nil}
}

func (w *reportWorker) Start() {
	dbPool, err := pgxpool.Connect(context.Background(), WarehouseDSN())
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error initializating the application: unable to connect to database: %v\n", err)
		os.Exit(1)
	}

	w.WarehouseService = services.NewWarehouseService(dbPool)
	w.dbPool = dbPool
}

func (w *reportWorker) TotalRevenueByGenre() ([]warehouse.GenreRevenue, error) {
	return w.WarehouseService.DB.TotalRevenueByGenre()
}

func (w *reportWorker) TotalRevenueByGamePerGenre(genre string) ([]warehouse.GameRevenue, error) {
	return w.WarehouseService.DB.TotalRevenueByGamePerGenre(genre)
}

func (w *reportWorker) RevenueByPlatformAndYear(years []int) ([]warehouse.PlatformRevenue, error) {
	return w.WarehouseService.DB.RevenueByPlatformAndYear(years)
}

func (w *reportWorker) TopPlaytimeGames(genre, platform string) ([]warehouse.GamePlaytime, error) {
	return w.WarehouseService.DB.TopPlaytimeGames(genre, platform)
}

func (w *reportWorker) EsportsEcosystem() ([]warehouse.EcosystemValue, error) {
	return w.WarehouseService.DB.EsportsEcosystem()
}

func (w *reportWorker) PlayerVsTeamEarnings() ([]warehouse.EarningsComparison, error) {
	return w.WarehouseService.DB.PlayerVsTeamEarnings()
}

func (w *reportWorker) AvailableYears() ([]int, error) {
	return w.WarehouseService.DB.AvailableYears()
}

func (w *reportWorker) AvailableGenres() ([]string, error) {
	return w.WarehouseService.DB.AvailableNames(queries.AvailableGenres())
}

func (w *reportWorker) AvailableGenresForRevenue() ([]string, error) {
	return w.WarehouseService.DB.AvailableNames(queries.AvailableGenresForRevenue())
}

func (w *reportWorker) AvailablePlatforms() ([]string, error) {
	return w.WarehouseService.DB.AvailableNames(queries.AvailablePlatforms())
}

// ExportTableCSV streams one warehouse table as CSV. Only the known warehouse
// tables are exportable; the table name never reaches the SQL text otherwise.
func (w *reportWorker) ExportTableCSV(out io.Writer, table string) error {
	if !isWarehouseTable(table) {
		return errors.Errorf("unknown warehouse table %q", table)
	}

	db, err := sql.Open("pgx", WarehouseDSN())
	if err != nil {
		return errors.Wrap(err, "unable to open export connection")
	}
	defer db.Close()

	rows, err := db.Query(fmt.Sprintf("SELECT * FROM %s;", table))
	if err != nil {
		return errors.Wrapf(err, "unable to read table %s for export", table)
	}
	defer rows.Close()

	return sqltocsv.Write(out, rows)
}

func (w *reportWorker) Close() {
	w.dbPool.Close()
}

func isWarehouseTable(table string) bool {
	for _, t := range queries.WarehouseTables() {
		if t == table {
			return true
		}
	}
	return false
}
