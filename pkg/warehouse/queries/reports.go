package queries

// Analytical queries over the populated warehouse.

func TotalRevenueByGenre() string {
	return `SELECT
    g.genre_name,
    SUM(fs.revenue_estimate) AS total_revenue
FROM fact_sales fs
    JOIN dim_game gm ON fs.game_id = gm.game_id
    JOIN dim_genre g ON gm.genre_id = g.genre_id
GROUP BY g.genre_name
ORDER BY total_revenue DESC;`
}

// TotalRevenueByGamePerGenre drills one genre down to its games.
func TotalRevenueByGamePerGenre() string {
	return `SELECT
    gm.game_name,
    SUM(fs.revenue_estimate) AS total_revenue
FROM fact_sales fs
    JOIN dim_game gm ON fs.game_id = gm.game_id
    JOIN dim_genre g ON gm.genre_id = g.genre_id
WHERE g.genre_name = $1
GROUP BY gm.game_name
HAVING SUM(fs.revenue_estimate) IS NOT NULL AND SUM(fs.revenue_estimate) > 0
ORDER BY total_revenue DESC
LIMIT 50;`
}

// RevenueByPlatformAndYear returns one row per (platform, year); the caller
// pivots the years client-side.
func RevenueByPlatformAndYear() string {
	return `SELECT
    p.platform_name,
    fs.year,
    SUM(fs.revenue_estimate) AS revenue
FROM fact_sales fs
    JOIN dim_game gm ON fs.game_id = gm.game_id
    JOIN dim_platform p ON gm.platform_id = p.platform_id
WHERE fs.year = ANY($1::int[])
GROUP BY p.platform_name, fs.year
ORDER BY p.platform_name, fs.year;`
}

// TopPlaytimeGames filters by genre and platform name; the literal 'ALL'
// disables a filter.
func TopPlaytimeGames() string {
	return `SELECT
    gm.game_name,
    g.genre_name,
    p.platform_name,
    AVG(fs.avg_playtime) AS average_playtime
FROM fact_sales fs
    JOIN dim_game gm ON fs.game_id = gm.game_id
    JOIN dim_genre g ON gm.genre_id = g.genre_id
    JOIN dim_platform p ON gm.platform_id = p.platform_id
WHERE ($1 = 'ALL' OR g.genre_name = $1)
  AND ($2 = 'ALL' OR p.platform_name = $2)
GROUP BY gm.game_name, g.genre_name, p.platform_name
HAVING AVG(fs.avg_playtime) IS NOT NULL AND AVG(fs.avg_playtime) > 0
ORDER BY average_playtime DESC
LIMIT 50;`
}

func EsportsEcosystem() string {
	return `WITH
    tournament_prizes AS (
        SELECT game_id, SUM(total_prize_pool) AS total_tournament_prizes
        FROM fact_esports
        GROUP BY game_id
    ),
    player_earnings AS (
        SELECT primary_game_id, SUM(total_earnings) AS total_player_earnings
        FROM dim_player
        WHERE primary_game_id IS NOT NULL
        GROUP BY primary_game_id
    ),
    team_earnings AS (
        SELECT primary_game_id, SUM(total_earnings) AS total_team_earnings
        FROM dim_team
        WHERE primary_game_id IS NOT NULL
        GROUP BY primary_game_id
    )
SELECT
    gm.game_name,
    COALESCE(tp.total_tournament_prizes, 0) AS tournament_prizes,
    COALESCE(pe.total_player_earnings, 0) AS player_earnings,
    COALESCE(te.total_team_earnings, 0) AS team_earnings,
    (
        COALESCE(tp.total_tournament_prizes, 0) +
        COALESCE(pe.total_player_earnings, 0) +
        COALESCE(te.total_team_earnings, 0)
    ) AS total_ecosystem_value
FROM dim_game gm
    LEFT JOIN tournament_prizes tp ON gm.game_id = tp.game_id
    LEFT JOIN player_earnings pe ON gm.game_id = pe.primary_game_id
    LEFT JOIN team_earnings te ON gm.game_id = te.primary_game_id
WHERE COALESCE(tp.total_tournament_prizes, 0) > 0
   OR COALESCE(pe.total_player_earnings, 0) > 0
   OR COALESCE(te.total_team_earnings, 0) > 0
ORDER BY total_ecosystem_value DESC;`
}

func PlayerVsTeamEarnings() string {
	return `WITH
    player_earnings AS (
        SELECT primary_game_id, SUM(total_earnings) AS total_player_earnings
        FROM dim_player
        WHERE primary_game_id IS NOT NULL
        GROUP BY primary_game_id
    ),
    team_earnings AS (
        SELECT primary_game_id, SUM(total_earnings) AS total_team_earnings
        FROM dim_team
        WHERE primary_game_id IS NOT NULL
        GROUP BY primary_game_id
    )
SELECT
    gm.game_name,
    COALESCE(pe.total_player_earnings, 0) AS total_player_earnings,
    COALESCE(te.total_team_earnings, 0) AS total_team_earnings
FROM dim_game gm
    LEFT JOIN player_earnings pe ON gm.game_id = pe.primary_game_id
    LEFT JOIN team_earnings te ON gm.game_id = te.primary_game_id
WHERE COALESCE(pe.total_player_earnings, 0) > 0
   OR COALESCE(te.total_team_earnings, 0) > 0
ORDER BY total_player_earnings DESC, total_team_earnings DESC
LIMIT 50;`
}

func AvailableYears() string {
	return `SELECT DISTINCT year FROM fact_sales WHERE year IS NOT NULL ORDER BY year;`
}

func AvailableGenres() string {
	return `SELECT DISTINCT genre_name FROM dim_genre ORDER BY genre_name;`
}

// AvailableGenresForRevenue lists only the genres that carry revenue, for the
// drill-down selector.
func AvailableGenresForRevenue() string {
	return `SELECT DISTINCT g.genre_name
FROM dim_genre g
    JOIN dim_game gm ON g.genre_id = gm.genre_id
    JOIN fact_sales fs ON gm.game_id = fs.game_id
WHERE fs.revenue_estimate IS NOT NULL AND fs.revenue_estimate > 0
ORDER BY g.genre_name;`
}

func AvailablePlatforms() string {
	return `SELECT DISTINCT platform_name FROM dim_platform ORDER BY platform_name;`
}
