package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"

	"github.com/notredoo/videogames-dw/pkg/warehouse"
	"github.com/notredoo/videogames-dw/pkg/warehouse/queries"
)

type Storage struct {
	pool *pgxpool.Pool
}

func (s *Storage) EnsureSchema() error {
	if _, err := s.pool.Exec(context.Background(), queries.WarehouseSchema()); err != nil {
		return errors.Wrap(err, "[storage error] unable to create warehouse schema")
	}
	return nil
}

func (s *Storage) Reset() error {
	if _, err := s.pool.Exec(context.Background(), queries.ResetWarehouse()); err != nil {
		return errors.Wrap(err, "[storage error] unable to reset warehouse tables")
	}
	return nil
}

// GetStagedColumn reads one nullable text column from a staging relation.
func (s *Storage) GetStagedColumn(query string) ([]*string, error) {
	rows, err := s.pool.Query(context.Background(), query)
	if err != nil {
		return nil, errors.Wrap(err, "[storage error] unable to read staging column")
	}
	defer rows.Close()

	var cells []*string
	for rows.Next() {
		var cell *string
		if err := rows.Scan(&cell); err != nil {
			return nil, errors.Wrap(err, "[storage error] unable to scan staging cell")
		}
		cells = append(cells, cell)
	}
	return cells, rows.Err()
}

func (s *Storage) GetCatalogGames() ([]warehouse.CatalogGame, error) {
	rows, err := s.pool.Query(context.Background(), queries.CatalogGames())
	if err != nil {
		return nil, errors.Wrap(err, "[storage error] unable to read game catalog staging")
	}
	defer rows.Close()

	var games []warehouse.CatalogGame
	for rows.Next() {
		var g warehouse.CatalogGame
		err := rows.Scan(
			&g.Name,
			&g.Developers,
			&g.Publishers,
			&g.Released,
			&g.Genres,
			&g.Platforms,
			&g.Rating,
			&g.Metacritic)
		if err != nil {
			return nil, errors.Wrapf(err, "[storage error] unable to scan catalog game with name = %s", g.Name)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (s *Storage) GetSnapshotGames() ([]warehouse.SnapshotGame, error) {
	rows, err := s.pool.Query(context.Background(), queries.SnapshotGames())
	if err != nil {
		return nil, errors.Wrap(err, "[storage error] unable to read population snapshot staging")
	}
	defer rows.Close()

	var games []warehouse.SnapshotGame
	for rows.Next() {
		var g warehouse.SnapshotGame
		err := rows.Scan(
			&g.Name,
			&g.ConcurrentUsers,
			&g.PriceCents,
			&g.AvgPlaytime,
			&g.Owners)
		if err != nil {
			return nil, errors.Wrapf(err, "[storage error] unable to scan snapshot game with name = %s", g.Name)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (s *Storage) GetStagedCountries() ([]warehouse.StagedCountry, error) {
	rows, err := s.pool.Query(context.Background(), queries.StagedCountries())
	if err != nil {
		return nil, errors.Wrap(err, "[storage error] unable to read country staging")
	}
	defer rows.Close()

	var countries []warehouse.StagedCountry
	for rows.Next() {
		var c warehouse.StagedCountry
		if err := rows.Scan(&c.ContinentName, &c.CountryName, &c.CountryCode); err != nil {
			return nil, errors.Wrap(err, "[storage error] unable to scan staged country")
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

func (s *Storage) GetStagedTeams() ([]warehouse.StagedTeam, error) {
	rows, err := s.pool.Query(context.Background(), queries.StagedTeams())
	if err != nil {
		return nil, errors.Wrap(err, "[storage error] unable to read team staging")
	}
	defer rows.Close()

	var teams []warehouse.StagedTeam
	for rows.Next() {
		var t warehouse.StagedTeam
		if err := rows.Scan(&t.TeamID, &t.TeamName, &t.GameName, &t.TotalUSDPrize); err != nil {
			return nil, errors.Wrap(err, "[storage error] unable to scan staged team")
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (s *Storage) GetStagedPlayers() ([]warehouse.StagedPlayer, error) {
	rows, err := s.pool.Query(context.Background(), queries.StagedPlayers())
	if err != nil {
		return nil, errors.Wrap(err, "[storage error] unable to read player staging")
	}
	defer rows.Close()

	var players []warehouse.StagedPlayer
	for rows.Next() {
		var p warehouse.StagedPlayer
		err := rows.Scan(
			&p.PlayerID,
			&p.NameFirst,
			&p.NameLast,
			&p.CurrentHandle,
			&p.CountryCode,
			&p.GameName,
			&p.TotalUSDPrize)
		if err != nil {
			return nil, errors.Wrap(err, "[storage error] unable to scan staged player")
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// LoadKeyResolver loads a (surrogate key, natural key) query result into a
// Key Resolver for the dependent builders.
func (s *Storage) LoadKeyResolver(query string) (warehouse.KeyResolver, error) {
	rows, err := s.pool.Query(context.Background(), query)
	if err != nil {
		return warehouse.KeyResolver{}, errors.Wrap(err, "[storage error] unable to load dimension keys")
	}
	defer rows.Close()

	keys := make(map[string]int64)
	for rows.Next() {
		var id int64
		var naturalKey string
		if err := rows.Scan(&id, &naturalKey); err != nil {
			return warehouse.KeyResolver{}, errors.Wrap(err, "[storage error] unable to scan dimension key")
		}
		keys[naturalKey] = id
	}
	return warehouse.NewKeyResolver(keys), rows.Err()
}

func (s *Storage) GetGameRecords() ([]warehouse.GameRecord, error) {
	rows, err := s.pool.Query(context.Background(), queries.GameRecords())
	if err != nil {
		return nil, errors.Wrap(err, "[storage error] unable to read game dimension")
	}
	defer rows.Close()

	var records []warehouse.GameRecord
	for rows.Next() {
		var r warehouse.GameRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Rating, &r.Year); err != nil {
			return nil, errors.Wrapf(err, "[storage error] unable to scan game record with id = %d", r.ID)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// InsertNameDimension loads a single-column name dimension (genre, platform,
// region): one row per value, in the given order.
func (s *Storage) InsertNameDimension(table, column string, values []string) (int64, error) {
	n := len(values)
	return s.insertRows(table, n, []insertColumn{
		{name: column, value: func(i int) interface{} { return values[i] }},
	})
}

func (s *Storage) InsertDateRows(rows []warehouse.DateRow) (int64, error) {
	return s.insertRows("dim_date", len(rows), []insertColumn{
		{name: "full_date", value: func(i int) interface{} { return rows[i].FullDate }},
		{name: "year", value: func(i int) interface{} { return rows[i].Year }},
		{name: "month", value: func(i int) interface{} { return rows[i].Month }},
		{name: "day", value: func(i int) interface{} { return rows[i].Day }},
	})
}

func (s *Storage) InsertCountryRows(rows []warehouse.CountryRow) (int64, error) {
	return s.insertRows("dim_country", len(rows), []insertColumn{
		{name: "country_code", value: func(i int) interface{} { return nullableString(rows[i].CountryCode) }},
		{name: "country_name", value: func(i int) interface{} { return rows[i].CountryName }},
		{name: "continent_name", value: func(i int) interface{} { return nullableString(rows[i].ContinentName) }},
	})
}

func (s *Storage) InsertGameRows(rows []warehouse.GameRow) (int64, error) {
	return s.insertRows("dim_game", len(rows), []insertColumn{
		{name: "game_name", value: func(i int) interface{} { return rows[i].GameName }},
		{name: "developer", value: func(i int) interface{} { return nullableString(rows[i].Developer) }},
		{name: "publisher", value: func(i int) interface{} { return nullableString(rows[i].Publisher) }},
		{name: "release_date", value: func(i int) interface{} { return nullableTime(rows[i].ReleaseDate) }},
		{name: "genre_id", value: func(i int) interface{} { return nullableInt(rows[i].GenreID) }},
		{name: "platform_id", value: func(i int) interface{} { return nullableInt(rows[i].PlatformID) }},
		{name: "rating", value: func(i int) interface{} { return nullableFloat(rows[i].Rating) }},
		{name: "metacritic_score", value: func(i int) interface{} { return nullableFloat(rows[i].Metacritic) }},
		{name: "player_count", value: func(i int) interface{} { return nullableFloat(rows[i].PlayerCount) }},
		{name: "price", value: func(i int) interface{} { return nullableFloat(rows[i].Price) }},
		{name: "playtime", value: func(i int) interface{} { return nullableFloat(rows[i].Playtime) }},
	})
}

func (s *Storage) InsertTeamRows(rows []warehouse.TeamRow) (int64, error) {
	return s.insertRows("dim_team", len(rows), []insertColumn{
		{name: "team_name", optional: true, value: func(i int) interface{} { return nullableString(rows[i].TeamName) }},
		{name: "total_earnings", optional: true, value: func(i int) interface{} { return nullableFloat(rows[i].TotalEarnings) }},
		{name: "primary_game_id", optional: true, value: func(i int) interface{} { return nullableInt(rows[i].PrimaryGameID) }},
	})
}

func (s *Storage) InsertPlayerRows(rows []warehouse.PlayerRow) (int64, error) {
	return s.insertRows("dim_player", len(rows), []insertColumn{
		{name: "player_name", optional: true, value: func(i int) interface{} { return nullableString(rows[i].PlayerName) }},
		{name: "current_handle", optional: true, value: func(i int) interface{} { return nullableString(rows[i].CurrentHandle) }},
		{name: "country_id", optional: true, value: func(i int) interface{} { return nullableInt(rows[i].CountryID) }},
		{name: "total_earnings", optional: true, value: func(i int) interface{} { return nullableFloat(rows[i].TotalEarnings) }},
		{name: "primary_game_id", optional: true, value: func(i int) interface{} { return nullableInt(rows[i].PrimaryGameID) }},
	})
}

func (s *Storage) InsertSalesFacts(facts []warehouse.SalesFact) (int64, error) {
	return s.insertRows("fact_sales", len(facts), []insertColumn{
		{name: "game_id", value: func(i int) interface{} { return facts[i].GameID }},
		{name: "year", value: func(i int) interface{} { return facts[i].Year }},
		{name: "estimated_sales", optional: true, value: func(i int) interface{} { return nullableFloat(facts[i].EstimatedSales) }},
		{name: "avg_playtime", optional: true, value: func(i int) interface{} { return nullableFloat(facts[i].AvgPlaytime) }},
		{name: "rating", optional: true, value: func(i int) interface{} { return nullableFloat(facts[i].Rating) }},
		{name: "revenue_estimate", optional: true, value: func(i int) interface{} { return nullableFloat(facts[i].RevenueEstimate) }},
	})
}

func (s *Storage) InsertEsportsFacts(facts []warehouse.EsportsFact) (int64, error) {
	return s.insertRows("fact_esports", len(facts), []insertColumn{
		{name: "game_id", value: func(i int) interface{} { return facts[i].GameID }},
		{name: "year", value: func(i int) interface{} { return facts[i].Year }},
		{name: "total_prize_pool", value: func(i int) interface{} { return facts[i].TotalPrizePool }},
		{name: "num_tournaments", value: func(i int) interface{} { return facts[i].NumTournaments }},
	})
}

// insertColumn describes one column of a batched insert. Optional columns are
// dropped from the statement when every value across the batch is null.
type insertColumn struct {
	name     string
	optional bool
	value    func(i int) interface{}
}

func (s *Storage) insertRows(table string, n int, cols []insertColumn) (int64, error) {
	if n == 0 {
		return 0, nil
	}

	var kept []insertColumn
	for _, c := range cols {
		if c.optional && allNull(n, c.value) {
			continue
		}
		kept = append(kept, c)
	}
	if len(kept) == 0 {
		return 0, nil
	}

	names := make([]string, len(kept))
	placeholders := make([]string, len(kept))
	for i, c := range kept {
		names[i] = c.name
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s);",
		table,
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "))

	tx, err := s.pool.Begin(context.Background())
	if err != nil {
		return 0, errors.Wrapf(err, "[storage error] unable to open transaction for %s", table)
	}

	for i := 0; i < n; i++ {
		args := make([]interface{}, len(kept))
		for j, c := range kept {
			args[j] = c.value(i)
		}
		if _, err := tx.Exec(context.Background(), query, args...); err != nil {
			_ = tx.Rollback(context.Background())
			return 0, errors.Wrapf(err, "[storage error] unable to insert row into %s", table)
		}
	}

	if err := tx.Commit(context.Background()); err != nil {
		_ = tx.Rollback(context.Background())
		return 0, errors.Wrapf(err, "[storage error] unable to commit inserts into %s", table)
	}
	return int64(n), nil
}

func allNull(n int, value func(i int) interface{}) bool {
	for i := 0; i < n; i++ {
		if value(i) != nil {
			return false
		}
	}
	return true
}

func nullableString(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableInt(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableTime(v *time.Time) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
