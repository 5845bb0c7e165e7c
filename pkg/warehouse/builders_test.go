package warehouse

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinReleaseDate(t *testing.T) {
	_, ok := MinReleaseDate([]*string{nil, strPtr("garbage")})
	assert.False(t, ok, "no parseable date must be reported, not guessed")

	min, ok := MinReleaseDate([]*string{strPtr("2015-06-01"), strPtr("2009-11-17"), nil, strPtr("bad")})
	require.True(t, ok)
	assert.Equal(t, time.Date(2009, 11, 17, 0, 0, 0, 0, time.UTC), min)
}

func TestBuildDateRows(t *testing.T) {
	min := time.Date(2020, 2, 27, 0, 0, 0, 0, time.UTC)
	max := time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC)

	rows := BuildDateRows(min, max)
	require.Len(t, rows, 5, "span is inclusive on both ends, leap day included")

	assert.Equal(t, DateRow{FullDate: time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC), Year: 2020, Month: 2, Day: 29}, rows[2])
	assert.Equal(t, max, rows[4].FullDate)
}

func TestBuildDateRowsSingleDay(t *testing.T) {
	day := time.Date(2021, 1, 1, 15, 30, 0, 0, time.UTC)
	rows := BuildDateRows(day, day)
	require.Len(t, rows, 1)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), rows[0].FullDate)
}

func TestBuildCountryRows(t *testing.T) {
	staged := []StagedCountry{
		{ContinentName: strPtr("Europe"), CountryName: strPtr("Germany"), CountryCode: strPtr("DE")},
		{ContinentName: strPtr("Europe"), CountryName: strPtr("Germany"), CountryCode: strPtr("DE")},
		{ContinentName: strPtr("Asia"), CountryName: nil, CountryCode: strPtr("XX")},
		{ContinentName: nil, CountryName: strPtr("Kosovo"), CountryCode: nil},
	}

	rows := BuildCountryRows(staged)
	require.Len(t, rows, 2, "duplicate triples collapse, null names excluded")
	assert.Equal(t, "Germany", rows[0].CountryName)
	assert.Equal(t, "Kosovo", rows[1].CountryName)
	assert.Nil(t, rows[1].ContinentName)
}

func TestBuildGameRowsMergeAndResolution(t *testing.T) {
	genres := NewKeyResolver(map[string]int64{"Action": 1, "Adventure": 2})
	platforms := NewKeyResolver(map[string]int64{"PC": 10})

	catalog := []CatalogGame{
		{
			Name:       "Counter-Strike: Global Offensive",
			Developers: strPtr("Valve|Hidden Path Entertainment"),
			Publishers: strPtr("Valve"),
			Released:   strPtr("2012-08-21"),
			Genres:     strPtr("Action|Adventure"),
			Platforms:  strPtr("PC (Microsoft Windows)|PlayStation 3"),
			Rating:     strPtr("4.0"),
			Metacritic: strPtr("83"),
		},
		// Duplicate name, first occurrence wins.
		{Name: "Counter-Strike: Global Offensive", Rating: strPtr("1.0")},
	}
	snapshot := []SnapshotGame{
		{
			Name:            "Counter-Strike: Global Offensive",
			ConcurrentUsers: strPtr("500000"),
			PriceCents:      strPtr("999"),
			AvgPlaytime:     strPtr("30000"),
		},
	}

	rows := BuildGameRows(catalog, snapshot, genres, platforms)
	require.Len(t, rows, 1)

	g := rows[0]
	assert.Equal(t, "Valve", *g.Developer, "first developer token only")
	require.NotNil(t, g.GenreID)
	assert.Equal(t, int64(1), *g.GenreID, "first listed genre is primary")
	require.NotNil(t, g.PlatformID)
	assert.Equal(t, int64(10), *g.PlatformID, "qualifier stripped before resolution")
	assert.Equal(t, 4.0, *g.Rating)
	assert.Equal(t, 9.99, *g.Price, "cents converted to major units")
	assert.Equal(t, 500000.0, *g.PlayerCount)
	require.NotNil(t, g.ReleaseDate)
	assert.Equal(t, 2012, g.ReleaseDate.Year())
}

func TestBuildGameRowsUnmatchedAndMissingKeys(t *testing.T) {
	catalog := []CatalogGame{
		{Name: "Obscure Indie Game", Genres: strPtr("Roguelike"), Platforms: strPtr("Amiga")},
		{Name: ""},
		{Name: "   "},
	}

	rows := BuildGameRows(catalog, nil, NewKeyResolver(nil), NewKeyResolver(nil))
	require.Len(t, rows, 1, "empty names dropped")

	g := rows[0]
	assert.Nil(t, g.GenreID, "an unresolvable genre is a null key, not a failure")
	assert.Nil(t, g.PlatformID)
	assert.Equal(t, UnknownCategory, *g.Developer, "imputation ran")
	assert.Nil(t, g.Rating, "no non-null values to compute a mean from")
}

func TestBuildGameRowsTruncation(t *testing.T) {
	long := strings.Repeat("a", 300)
	catalog := []CatalogGame{
		{Name: long, Developers: strPtr(long + "|other")},
	}

	rows := BuildGameRows(catalog, nil, NewKeyResolver(nil), NewKeyResolver(nil))
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].GameName, MaxTextWidth)
	assert.Len(t, *rows[0].Developer, MaxTextWidth)
}

func TestBuildGameRowsImputedMeanFromMergedRows(t *testing.T) {
	catalog := []CatalogGame{
		{Name: "A", Rating: strPtr("4.0")},
		{Name: "B"},
		{Name: "C", Rating: strPtr("6.0")},
	}

	rows := BuildGameRows(catalog, nil, NewKeyResolver(nil), NewKeyResolver(nil))
	require.Len(t, rows, 3)
	require.NotNil(t, rows[1].Rating)
	assert.Equal(t, 5.0, *rows[1].Rating)
}

func TestBuildTeamRows(t *testing.T) {
	games := NewKeyResolver(map[string]int64{"Dota 2": 3})

	staged := []StagedTeam{
		{TeamID: strPtr("1"), TeamName: strPtr("Team Liquid"), GameName: strPtr("Dota 2"), TotalUSDPrize: strPtr("1000000.50")},
		{TeamID: strPtr("2"), TeamName: strPtr("Team Liquid"), GameName: strPtr("Dota 2"), TotalUSDPrize: strPtr("5")},
		{TeamID: strPtr("3"), TeamName: strPtr("Mystery Org"), GameName: strPtr("Unknown Game"), TotalUSDPrize: strPtr("n/a")},
		{TeamID: strPtr("4"), TeamName: nil, GameName: strPtr("Dota 2"), TotalUSDPrize: strPtr("42")},
		{TeamID: strPtr("5"), TeamName: nil, TotalUSDPrize: strPtr("7")},
	}

	rows := BuildTeamRows(staged, games)
	require.Len(t, rows, 3, "deduplicated by team name, first occurrence wins")

	assert.Equal(t, "Team Liquid", *rows[0].TeamName)
	assert.Equal(t, 1000000.50, *rows[0].TotalEarnings)
	assert.Equal(t, int64(3), *rows[0].PrimaryGameID)

	assert.Nil(t, rows[1].PrimaryGameID, "unresolvable game keeps the row with a null key")
	assert.Nil(t, rows[1].TotalEarnings, "unparseable earnings coerce to null")

	assert.Nil(t, rows[2].TeamName, "one nameless row survives with a null name")
	assert.Equal(t, 42.0, *rows[2].TotalEarnings)
}

func TestBuildPlayerRows(t *testing.T) {
	countries := NewKeyResolver(map[string]int64{"de": 5})
	games := NewKeyResolver(map[string]int64{"Counter-Strike: Global Offensive": 9})

	staged := []StagedPlayer{
		{
			PlayerID:      strPtr("1001"),
			NameFirst:     strPtr("Nicolai"),
			NameLast:      strPtr("Reedtz"),
			CurrentHandle: strPtr("dev1ce"),
			CountryCode:   strPtr("de"),
			GameName:      strPtr("Counter-Strike: Global Offensive"),
			TotalUSDPrize: strPtr("1900000"),
		},
		// Duplicate id, first occurrence wins.
		{PlayerID: strPtr("1001"), NameFirst: strPtr("Other")},
		{PlayerID: strPtr("1002"), NameFirst: strPtr("Solo"), NameLast: nil},
	}

	rows := BuildPlayerRows(staged, countries, games)
	require.Len(t, rows, 2)

	p := rows[0]
	assert.Equal(t, "Nicolai Reedtz", *p.PlayerName)
	assert.Equal(t, int64(5), *p.CountryID)
	assert.Equal(t, int64(9), *p.PrimaryGameID)
	assert.Equal(t, 1900000.0, *p.TotalEarnings)

	assert.Nil(t, rows[1].PlayerName, "display name needs both name parts")
}

func TestBuildSalesFacts(t *testing.T) {
	year := 2012
	games := []GameRecord{
		{ID: 1, Name: "CS:GO", Rating: floatPtr(4.0), Year: &year},
		{ID: 2, Name: "No Snapshot Match", Year: &year},
		{ID: 3, Name: "No Year", Rating: floatPtr(3.0)},
	}
	snapshot := []SnapshotGame{
		{Name: "CS:GO", Owners: strPtr("1,000,000 .. 2,000,000"), PriceCents: strPtr("999"), AvgPlaytime: strPtr("30000")},
		{Name: "No Year", Owners: strPtr("20,000 .. 50,000"), PriceCents: strPtr("100")},
	}

	facts := BuildSalesFacts(games, snapshot)
	require.Len(t, facts, 1, "unmatched names and missing years are dropped")

	f := facts[0]
	assert.Equal(t, int64(1), f.GameID)
	assert.Equal(t, 2012, f.Year)
	assert.Equal(t, 1000000.0, *f.EstimatedSales, "low bound of the owners range")
	assert.Equal(t, 9990000.0, *f.RevenueEstimate)
	assert.Equal(t, 30000.0, *f.AvgPlaytime)
	assert.Equal(t, 4.0, *f.Rating)
}

func TestBuildEsportsFactsAggregation(t *testing.T) {
	year := 2013
	games := []GameRecord{{ID: 7, Name: "Dota 2", Year: &year}}

	staged := []StagedTeam{
		{TeamName: strPtr("A"), GameName: strPtr("Dota 2"), TotalUSDPrize: strPtr("100")},
		{TeamName: strPtr("B"), GameName: strPtr("Dota 2"), TotalUSDPrize: strPtr("200")},
		{TeamName: strPtr("C"), GameName: strPtr("Dota 2"), TotalUSDPrize: nil},
	}

	facts := BuildEsportsFacts(staged, games)
	require.Len(t, facts, 1)

	f := facts[0]
	assert.Equal(t, int64(7), f.GameID)
	assert.Equal(t, 2013, f.Year)
	assert.Equal(t, 300.0, f.TotalPrizePool, "null prize excluded from the sum")
	assert.Equal(t, 3, f.NumTournaments, "but still counted as a participation row")
}

func TestBuildEsportsFactsDropsUnresolvable(t *testing.T) {
	year := 2015
	games := []GameRecord{
		{ID: 1, Name: "Known", Year: &year},
		{ID: 2, Name: "No Year"},
	}
	staged := []StagedTeam{
		{TeamName: strPtr("A"), GameName: strPtr("Known"), TotalUSDPrize: strPtr("10")},
		{TeamName: strPtr("B"), GameName: strPtr("Never Heard Of It"), TotalUSDPrize: strPtr("10")},
		{TeamName: strPtr("C"), GameName: strPtr("No Year"), TotalUSDPrize: strPtr("10")},
		{TeamName: strPtr("D"), GameName: nil},
	}

	facts := BuildEsportsFacts(staged, games)
	require.Len(t, facts, 1, "facts never reference a game id that is not in dim_game")
	assert.Equal(t, int64(1), facts[0].GameID)
}

func TestFactForeignKeysResolveToDimGame(t *testing.T) {
	year := 2018
	games := []GameRecord{
		{ID: 4, Name: "Fortnite", Year: &year},
		{ID: 5, Name: "Apex Legends", Year: &year},
	}
	known := map[int64]bool{4: true, 5: true}

	snapshot := []SnapshotGame{
		{Name: "Fortnite", Owners: strPtr("100 .. 200"), PriceCents: strPtr("0")},
		{Name: "Apex Legends", Owners: strPtr("100 .. 200"), PriceCents: strPtr("0")},
		{Name: "Not In Dim", Owners: strPtr("100 .. 200"), PriceCents: strPtr("0")},
	}
	for _, f := range BuildSalesFacts(games, snapshot) {
		assert.True(t, known[f.GameID])
	}

	staged := []StagedTeam{
		{TeamName: strPtr("A"), GameName: strPtr("Fortnite"), TotalUSDPrize: strPtr("1")},
		{TeamName: strPtr("B"), GameName: strPtr("Not In Dim"), TotalUSDPrize: strPtr("1")},
	}
	for _, f := range BuildEsportsFacts(staged, games) {
		assert.True(t, known[f.GameID])
	}
}
