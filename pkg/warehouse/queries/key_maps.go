package queries

// Key-map queries back the Key Resolver: each returns (surrogate key, natural
// key) pairs for one dimension.

func GenreKeys() string {
	return `SELECT genre_id, genre_name FROM dim_genre;`
}

func PlatformKeys() string {
	return `SELECT platform_id, platform_name FROM dim_platform;`
}

func GameKeys() string {
	return `SELECT game_id, game_name FROM dim_game;`
}

func CountryKeys() string {
	return `SELECT country_id, country_code FROM dim_country WHERE country_code IS NOT NULL;`
}

// GameRecords reads dim_game back for the dependent fact builders: surrogate
// key, natural key, rating and the release year.
func GameRecords() string {
	return `SELECT
    game_id,
    game_name,
    rating,
    EXTRACT(YEAR FROM release_date)::int AS year
FROM dim_game;`
}
