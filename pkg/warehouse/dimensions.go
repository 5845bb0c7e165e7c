package warehouse

import "time"

// MaxTextWidth is the storage width of every truncated text column.
const MaxTextWidth = 255

// Regions is the fixed enumeration loaded into dim_region.
var Regions = []string{"North America", "Europe", "Japan", "Rest of World"}

type DateRow struct {
	FullDate time.Time
	Year     int
	Month    int
	Day      int
}

type CountryRow struct {
	CountryCode   *string
	CountryName   string
	ContinentName *string
}

type GameRow struct {
	GameName    string
	Developer   *string
	Publisher   *string
	ReleaseDate *time.Time
	GenreID     *int64
	PlatformID  *int64
	Rating      *float64
	Metacritic  *float64
	PlayerCount *float64
	Price       *float64
	Playtime    *float64
}

type TeamRow struct {
	TeamName      *string
	TotalEarnings *float64
	PrimaryGameID *int64
}

type PlayerRow struct {
	PlayerName    *string
	CurrentHandle *string
	CountryID     *int64
	TotalEarnings *float64
	PrimaryGameID *int64
}

// GameRecord is the dim_game read-back used by the dependent builders: the
// surrogate key plus the natural key and the fields the fact tables carry over.
type GameRecord struct {
	ID     int64
	Name   string
	Rating *float64
	Year   *int
}
