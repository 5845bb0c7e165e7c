package queries

// Staging extraction queries. Source-typed columns are cast to text so the
// transform side owns all numeric coercion; staging loads are not trusted to
// carry consistent types.

func CatalogGames() string {
	return `SELECT
    COALESCE(name, '') AS name,
    developers,
    publishers,
    released::text,
    genres,
    platforms,
    rating::text,
    metacritic::text
FROM stg_rawg_games;`
}

func CatalogReleaseDates() string {
	return `SELECT released::text FROM stg_rawg_games WHERE released IS NOT NULL;`
}

func CatalogGenres() string {
	return `SELECT genres FROM stg_rawg_games;`
}

func CatalogPlatforms() string {
	return `SELECT platforms FROM stg_rawg_games;`
}

func SnapshotGames() string {
	return `SELECT
    COALESCE(name, '') AS name,
    ccu::text,
    price::text,
    average_forever::text,
    owners::text
FROM stg_steamspy_games;`
}

func StagedCountries() string {
	return `SELECT DISTINCT
    "Continent_Name",
    "Country_Name",
    "Two_Letter_Country_Code"
FROM stg_countries;`
}

func StagedTeams() string {
	return `SELECT
    "TeamId"::text,
    "TeamName",
    "Game",
    "TotalUSDPrize"::text
FROM stg_esports_teams;`
}

func StagedPlayers() string {
	return `SELECT
    "PlayerId"::text,
    "NameFirst",
    "NameLast",
    "CurrentHandle",
    "CountryCode",
    "Game",
    "TotalUSDPrize"::text
FROM stg_esports_players;`
}
