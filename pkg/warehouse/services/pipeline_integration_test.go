package services

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDSN = os.Getenv("WAREHOUSE_TEST_DSN")

// Exercises the whole pipeline against a throwaway database: staging is
// seeded, the run must succeed, natural keys must come out unique, and a
// second run must be a byte-identical rebuild.
func TestRunPipeline_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDSN == "" {
		t.Skip("Skipping integration test: database not available")
	}

	ctx := context.Background()
	pool, err := pgxpool.Connect(ctx, testDSN)
	require.NoError(t, err)
	defer pool.Close()

	seedStaging(t, pool)

	svc := NewWarehouseService(pool)
	report := svc.RunPipeline()
	require.False(t, report.Failed(), "failed stages: %+v", report.FailedStages())

	t.Run("natural keys are unique", func(t *testing.T) {
		checks := map[string]string{
			"dim_genre":    `SELECT COUNT(*) - COUNT(DISTINCT genre_name) FROM dim_genre`,
			"dim_platform": `SELECT COUNT(*) - COUNT(DISTINCT platform_name) FROM dim_platform`,
			"dim_game":     `SELECT COUNT(*) - COUNT(DISTINCT game_name) FROM dim_game`,
			"dim_team":     `SELECT COUNT(*) - COUNT(DISTINCT team_name) FROM dim_team`,
			"dim_date":     `SELECT COUNT(*) - COUNT(DISTINCT full_date) FROM dim_date`,
		}
		for table, query := range checks {
			var dupes int
			require.NoError(t, pool.QueryRow(ctx, query).Scan(&dupes))
			assert.Zero(t, dupes, "duplicate natural keys in %s", table)
		}
	})

	t.Run("foreign keys resolve", func(t *testing.T) {
		checks := []string{
			`SELECT COUNT(*) FROM dim_team t LEFT JOIN dim_game g ON t.primary_game_id = g.game_id
			 WHERE t.primary_game_id IS NOT NULL AND g.game_id IS NULL`,
			`SELECT COUNT(*) FROM fact_sales f LEFT JOIN dim_game g ON f.game_id = g.game_id
			 WHERE g.game_id IS NULL`,
			`SELECT COUNT(*) FROM fact_esports f LEFT JOIN dim_game g ON f.game_id = g.game_id
			 WHERE g.game_id IS NULL`,
		}
		for _, query := range checks {
			var dangling int
			require.NoError(t, pool.QueryRow(ctx, query).Scan(&dangling))
			assert.Zero(t, dangling)
		}
	})

	t.Run("rebuild is idempotent", func(t *testing.T) {
		first := tableCounts(t, pool)
		report := svc.RunPipeline()
		require.False(t, report.Failed())
		assert.Equal(t, first, tableCounts(t, pool))
	})
}

func seedStaging(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	ddl := []string{
		`DROP TABLE IF EXISTS stg_rawg_games;
		 CREATE TABLE stg_rawg_games (name TEXT, developers TEXT, publishers TEXT, released TEXT,
		     genres TEXT, platforms TEXT, rating TEXT, metacritic TEXT);`,
		`DROP TABLE IF EXISTS stg_steamspy_games;
		 CREATE TABLE stg_steamspy_games (name TEXT, ccu TEXT, price TEXT, average_forever TEXT, owners TEXT);`,
		`DROP TABLE IF EXISTS stg_countries;
		 CREATE TABLE stg_countries ("Continent_Name" TEXT, "Country_Name" TEXT, "Two_Letter_Country_Code" TEXT);`,
		`DROP TABLE IF EXISTS stg_esports_teams;
		 CREATE TABLE stg_esports_teams ("TeamId" TEXT, "TeamName" TEXT, "Game" TEXT, "TotalUSDPrize" TEXT);`,
		`DROP TABLE IF EXISTS stg_esports_players;
		 CREATE TABLE stg_esports_players ("PlayerId" TEXT, "NameFirst" TEXT, "NameLast" TEXT,
		     "CurrentHandle" TEXT, "CountryCode" TEXT, "Game" TEXT, "TotalUSDPrize" TEXT);`,
	}
	for _, stmt := range ddl {
		_, err := pool.Exec(ctx, stmt)
		require.NoError(t, err)
	}

	seeds := []string{
		`INSERT INTO stg_rawg_games VALUES
		 ('Counter-Strike: Global Offensive', 'Valve|Hidden Path Entertainment', 'Valve', '2012-08-21',
		  'Action|Shooter', 'PC (Microsoft Windows)|Linux', '4.0', '83'),
		 ('Counter-Strike: Global Offensive', 'dupe', 'dupe', '2012-08-21', 'Action', 'PC', '1.0', '1'),
		 ('Dota 2', 'Valve', 'Valve', '2013-07-09', 'Action|Strategy', 'PC', NULL, '90'),
		 ('Obscure Game', NULL, NULL, NULL, NULL, NULL, NULL, NULL);`,
		`INSERT INTO stg_steamspy_games VALUES
		 ('Counter-Strike: Global Offensive', '500000', '999', '30000', '1,000,000 .. 2,000,000'),
		 ('Dota 2', '400000', '0', '40000', '100,000,000 .. 200,000,000');`,
		`INSERT INTO stg_countries VALUES
		 ('Europe', 'Denmark', 'DK'),
		 ('Europe', 'Denmark', 'DK'),
		 ('Asia', NULL, 'XX');`,
		`INSERT INTO stg_esports_teams VALUES
		 ('1', 'Astralis', 'Counter-Strike: Global Offensive', '100'),
		 ('2', 'Team Liquid', 'Counter-Strike: Global Offensive', '200'),
		 ('3', 'Unknowns', 'Counter-Strike: Global Offensive', NULL),
		 ('4', 'Orphans', 'Game Not In Catalog', '50');`,
		`INSERT INTO stg_esports_players VALUES
		 ('1001', 'Nicolai', 'Reedtz', 'dev1ce', 'dk', 'Counter-Strike: Global Offensive', '1900000'),
		 ('1001', 'Duplicate', 'Row', 'dupe', 'dk', 'Counter-Strike: Global Offensive', '1');`,
	}
	for _, stmt := range seeds {
		_, err := pool.Exec(ctx, stmt)
		require.NoError(t, err)
	}
}

func tableCounts(t *testing.T, pool *pgxpool.Pool) map[string]int {
	t.Helper()
	ctx := context.Background()

	counts := make(map[string]int)
	tables := []string{
		"dim_genre", "dim_platform", "dim_date", "dim_country", "dim_region",
		"dim_game", "dim_team", "dim_player", "fact_sales", "fact_esports",
	}
	for _, table := range tables {
		var n int
		require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n))
		counts[table] = n
	}
	return counts
}
