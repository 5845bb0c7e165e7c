package services

import (
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/notredoo/videogames-dw/pkg/warehouse"
	"github.com/notredoo/videogames-dw/pkg/warehouse/queries"
)

type Service struct {
	storage *pgxpool.Pool
	DB      Storage
	log     *logrus.Logger
}

func NewWarehouseService(pgStorage *pgxpool.Pool) *Service {
	return &Service{
		storage: pgStorage,
		DB:      Storage{pool: pgStorage},
		log:     logrus.StandardLogger(),
	}
}

// RunPipeline executes the full transform in dependency order: reset, the
// independent dimensions, the game merge, the dependent dimensions, then the
// facts. Each stage commits before the next starts because later stages
// resolve keys against earlier output. A stage failure is recorded and the
// run continues with the next stage.
func (s *Service) RunPipeline() *warehouse.RunReport {
	report := warehouse.NewRunReport()

	stages := []struct {
		name string
		run  func() (int64, error)
	}{
		{"schema", s.EnsureSchema},
		{"reset", s.ResetWarehouse},
		{"dim_genre", s.BuildGenreDimension},
		{"dim_platform", s.BuildPlatformDimension},
		{"dim_date", s.BuildDateDimension},
		{"dim_country", s.BuildCountryDimension},
		{"dim_region", s.BuildRegionDimension},
		{"dim_game", s.BuildGameDimension},
		{"dim_team", s.BuildTeamDimension},
		{"dim_player", s.BuildPlayerDimension},
		{"fact_sales", s.BuildSalesFacts},
		{"fact_esports", s.BuildEsportsFacts},
	}

	for _, stage := range stages {
		report.Add(s.runStage(stage.name, stage.run))
	}
	report.Finish()
	return report
}

func (s *Service) runStage(name string, run func() (int64, error)) warehouse.StageResult {
	start := time.Now()
	rows, err := run()
	elapsed := time.Since(start)

	result := warehouse.StageResult{
		Stage:    name,
		Rows:     rows,
		Err:      err,
		Elapsed:  elapsed,
		Duration: elapsed.String(),
	}
	if err != nil {
		result.Error = err.Error()
		s.log.WithField("stage", name).WithError(err).Error("stage failed")
		return result
	}
	s.log.WithFields(logrus.Fields{"stage": name, "rows": rows}).Info("stage complete")
	return result
}

func (s *Service) EnsureSchema() (int64, error) {
	return 0, s.DB.EnsureSchema()
}

func (s *Service) ResetWarehouse() (int64, error) {
	return 0, s.DB.Reset()
}

func (s *Service) BuildGenreDimension() (int64, error) {
	cells, err := s.DB.GetStagedColumn(queries.CatalogGenres())
	if err != nil {
		return 0, err
	}
	genres := warehouse.UniqueTokens(cells, nil)
	return s.DB.InsertNameDimension("dim_genre", "genre_name", genres)
}

func (s *Service) BuildPlatformDimension() (int64, error) {
	cells, err := s.DB.GetStagedColumn(queries.CatalogPlatforms())
	if err != nil {
		return 0, err
	}
	platforms := warehouse.UniqueTokens(cells, warehouse.StripPlatformQualifier)
	return s.DB.InsertNameDimension("dim_platform", "platform_name", platforms)
}

func (s *Service) BuildDateDimension() (int64, error) {
	cells, err := s.DB.GetStagedColumn(queries.CatalogReleaseDates())
	if err != nil {
		return 0, err
	}
	min, ok := warehouse.MinReleaseDate(cells)
	if !ok {
		return 0, errors.New("no parseable release date in the game catalog staging")
	}
	return s.DB.InsertDateRows(warehouse.BuildDateRows(min, time.Now().UTC()))
}

func (s *Service) BuildCountryDimension() (int64, error) {
	staged, err := s.DB.GetStagedCountries()
	if err != nil {
		return 0, err
	}
	return s.DB.InsertCountryRows(warehouse.BuildCountryRows(staged))
}

func (s *Service) BuildRegionDimension() (int64, error) {
	return s.DB.InsertNameDimension("dim_region", "region_name", warehouse.Regions)
}

func (s *Service) BuildGameDimension() (int64, error) {
	catalog, err := s.DB.GetCatalogGames()
	if err != nil {
		return 0, err
	}
	snapshot, err := s.DB.GetSnapshotGames()
	if err != nil {
		return 0, err
	}
	genres, err := s.DB.LoadKeyResolver(queries.GenreKeys())
	if err != nil {
		return 0, err
	}
	platforms, err := s.DB.LoadKeyResolver(queries.PlatformKeys())
	if err != nil {
		return 0, err
	}
	return s.DB.InsertGameRows(warehouse.BuildGameRows(catalog, snapshot, genres, platforms))
}

func (s *Service) BuildTeamDimension() (int64, error) {
	staged, err := s.DB.GetStagedTeams()
	if err != nil {
		return 0, err
	}
	games, err := s.DB.LoadKeyResolver(queries.GameKeys())
	if err != nil {
		return 0, err
	}
	return s.DB.InsertTeamRows(warehouse.BuildTeamRows(staged, games))
}

func (s *Service) BuildPlayerDimension() (int64, error) {
	staged, err := s.DB.GetStagedPlayers()
	if err != nil {
		return 0, err
	}
	countries, err := s.DB.LoadKeyResolver(queries.CountryKeys())
	if err != nil {
		return 0, err
	}
	games, err := s.DB.LoadKeyResolver(queries.GameKeys())
	if err != nil {
		return 0, err
	}
	return s.DB.InsertPlayerRows(warehouse.BuildPlayerRows(staged, countries, games))
}

func (s *Service) BuildSalesFacts() (int64, error) {
	records, err := s.DB.GetGameRecords()
	if err != nil {
		return 0, err
	}
	snapshot, err := s.DB.GetSnapshotGames()
	if err != nil {
		return 0, err
	}
	return s.DB.InsertSalesFacts(warehouse.BuildSalesFacts(records, snapshot))
}

func (s *Service) BuildEsportsFacts() (int64, error) {
	staged, err := s.DB.GetStagedTeams()
	if err != nil {
		return 0, err
	}
	records, err := s.DB.GetGameRecords()
	if err != nil {
		return 0, err
	}
	return s.DB.InsertEsportsFacts(warehouse.BuildEsportsFacts(staged, records))
}
