package queries

// WarehouseSchema is the idempotent DDL for every warehouse table. Dimension
// surrogate keys are generated serials; staging tables are owned by the
// ingestion side and are never created here.
func WarehouseSchema() string {
	return `
CREATE TABLE IF NOT EXISTS dim_genre (
    genre_id SERIAL PRIMARY KEY,
    genre_name VARCHAR(255)
);

CREATE TABLE IF NOT EXISTS dim_platform (
    platform_id SERIAL PRIMARY KEY,
    platform_name VARCHAR(255)
);

CREATE TABLE IF NOT EXISTS dim_date (
    date_id SERIAL PRIMARY KEY,
    full_date DATE,
    year INT,
    month INT,
    day INT
);

CREATE TABLE IF NOT EXISTS dim_country (
    country_id SERIAL PRIMARY KEY,
    country_code VARCHAR(2),
    country_name VARCHAR(255),
    continent_name VARCHAR(255)
);

CREATE TABLE IF NOT EXISTS dim_region (
    region_id SERIAL PRIMARY KEY,
    region_name VARCHAR(255)
);

CREATE TABLE IF NOT EXISTS dim_game (
    game_id SERIAL PRIMARY KEY,
    game_name VARCHAR(255),
    developer VARCHAR(255),
    publisher VARCHAR(255),
    release_date DATE,
    genre_id INT REFERENCES dim_genre (genre_id),
    platform_id INT REFERENCES dim_platform (platform_id),
    rating NUMERIC,
    metacritic_score NUMERIC,
    player_count NUMERIC,
    price NUMERIC,
    playtime NUMERIC
);

CREATE TABLE IF NOT EXISTS dim_team (
    team_id SERIAL PRIMARY KEY,
    team_name VARCHAR(255),
    total_earnings NUMERIC,
    primary_game_id INT REFERENCES dim_game (game_id)
);

CREATE TABLE IF NOT EXISTS dim_player (
    player_id SERIAL PRIMARY KEY,
    player_name VARCHAR(255),
    current_handle VARCHAR(255),
    country_id INT REFERENCES dim_country (country_id),
    total_earnings NUMERIC,
    primary_game_id INT REFERENCES dim_game (game_id)
);

CREATE TABLE IF NOT EXISTS fact_sales (
    game_id INT REFERENCES dim_game (game_id),
    year INT,
    estimated_sales NUMERIC,
    avg_playtime NUMERIC,
    rating NUMERIC,
    revenue_estimate NUMERIC
);

CREATE TABLE IF NOT EXISTS fact_esports (
    game_id INT REFERENCES dim_game (game_id),
    year INT,
    total_prize_pool NUMERIC,
    num_tournaments INT
);`
}

// ResetWarehouse wipes every warehouse table and restarts the surrogate-key
// sequences in one statement, cascading through the foreign-key dependents.
func ResetWarehouse() string {
	return `TRUNCATE TABLE
    fact_sales,
    fact_esports,
    dim_player,
    dim_team,
    dim_game,
    dim_country,
    dim_date,
    dim_genre,
    dim_platform,
    dim_region
RESTART IDENTITY CASCADE;`
}

// WarehouseTables lists every exportable warehouse table.
func WarehouseTables() []string {
	return []string{
		"dim_genre",
		"dim_platform",
		"dim_date",
		"dim_country",
		"dim_region",
		"dim_game",
		"dim_team",
		"dim_player",
		"fact_sales",
		"fact_esports",
	}
}
