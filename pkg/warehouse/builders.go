package warehouse

import (
	"sort"
	"strings"
	"time"
)

// The builders in this file are the transform core: pure functions from staged
// rows (plus resolved keys) to warehouse rows. Reading staging and persisting
// the results is the storage layer's job.

// MinReleaseDate finds the earliest parseable release date of the catalog.
// The second return is false when no cell parses.
func MinReleaseDate(cells []*string) (time.Time, bool) {
	var min time.Time
	var found bool
	for _, cell := range cells {
		d := ToDate(cell)
		if d == nil {
			continue
		}
		if !found || d.Before(min) {
			min = *d
			found = true
		}
	}
	return min, found
}

// BuildDateRows emits one row per calendar day in [min, max] inclusive.
func BuildDateRows(min, max time.Time) []DateRow {
	min = time.Date(min.Year(), min.Month(), min.Day(), 0, 0, 0, 0, time.UTC)
	max = time.Date(max.Year(), max.Month(), max.Day(), 0, 0, 0, 0, time.UTC)

	var rows []DateRow
	for d := min; !d.After(max); d = d.AddDate(0, 0, 1) {
		rows = append(rows, DateRow{
			FullDate: d,
			Year:     d.Year(),
			Month:    int(d.Month()),
			Day:      d.Day(),
		})
	}
	return rows
}

// BuildCountryRows keeps one row per distinct (continent, name, code) triple,
// excluding rows with no country name.
func BuildCountryRows(staged []StagedCountry) []CountryRow {
	type triple struct {
		continent, name, code string
	}
	seen := make(map[triple]bool)

	var rows []CountryRow
	for _, c := range staged {
		if c.CountryName == nil {
			continue
		}
		key := triple{derefOr(c.ContinentName, ""), *c.CountryName, derefOr(c.CountryCode, "")}
		if seen[key] {
			continue
		}
		seen[key] = true
		rows = append(rows, CountryRow{
			CountryCode:   c.CountryCode,
			CountryName:   *c.CountryName,
			ContinentName: c.ContinentName,
		})
	}
	return rows
}

// BuildGameRows reconciles the game catalog with the population snapshot by
// exact name match and produces the cleaned dim_game rows: both sources
// deduplicated first-occurrence-wins, first-listed genre and platform resolved
// to surrogate keys, snapshot numerics left-joined in, text truncated, and the
// imputation policy applied last.
func BuildGameRows(catalog []CatalogGame, snapshot []SnapshotGame, genres, platforms KeyResolver) []GameRow {
	snapshotByName := make(map[string]SnapshotGame)
	for _, s := range snapshot {
		if _, ok := snapshotByName[s.Name]; !ok {
			snapshotByName[s.Name] = s
		}
	}

	seenSource := make(map[string]bool)
	seenName := make(map[string]bool)

	var rows []GameRow
	for _, g := range catalog {
		if strings.TrimSpace(g.Name) == "" {
			continue
		}
		if seenSource[g.Name] {
			continue
		}
		seenSource[g.Name] = true

		row := GameRow{
			GameName:    TruncateText(g.Name),
			Developer:   truncateNullable(FirstToken(g.Developers)),
			Publisher:   truncateNullable(FirstToken(g.Publishers)),
			ReleaseDate: ToDate(g.Released),
			GenreID:     genres.ResolveNullable(FirstToken(g.Genres)),
			PlatformID:  platforms.ResolveNullable(cleanFirstPlatform(g.Platforms)),
			Rating:      ToNumeric(g.Rating),
			Metacritic:  ToNumeric(g.Metacritic),
		}

		if s, ok := snapshotByName[g.Name]; ok {
			row.PlayerCount = ToNumeric(s.ConcurrentUsers)
			row.Price = PriceMajorUnits(s.PriceCents)
			row.Playtime = ToNumeric(s.AvgPlaytime)
		}

		// Truncation can collapse two long names into one; guard against
		// duplicate game names after the merge.
		if seenName[row.GameName] {
			continue
		}
		seenName[row.GameName] = true
		rows = append(rows, row)
	}

	ImputeGameRows(rows)
	return rows
}

// BuildTeamRows deduplicates the team staging by team name (first occurrence
// wins) and resolves each team's primary game against dim_game. An
// unresolvable game name yields a null key, the row is still kept. Nameless
// rows form their own dedup group, so at most one survives with a null name.
func BuildTeamRows(staged []StagedTeam, games KeyResolver) []TeamRow {
	seen := make(map[string]bool)
	var seenNameless bool

	var rows []TeamRow
	for _, t := range staged {
		if t.TeamName == nil {
			if seenNameless {
				continue
			}
			seenNameless = true
		} else {
			if seen[*t.TeamName] {
				continue
			}
			seen[*t.TeamName] = true
		}

		rows = append(rows, TeamRow{
			TeamName:      truncateNullable(t.TeamName),
			TotalEarnings: ToNumeric(t.TotalUSDPrize),
			PrimaryGameID: games.ResolveNullable(t.GameName),
		})
	}
	return rows
}

// BuildPlayerRows deduplicates the player staging by player id (first
// occurrence wins), concatenates the display name, and resolves country and
// primary game surrogate keys. Misses resolve to null, rows are kept.
func BuildPlayerRows(staged []StagedPlayer, countries, games KeyResolver) []PlayerRow {
	seen := make(map[string]bool)

	var rows []PlayerRow
	for _, p := range staged {
		id := derefOr(p.PlayerID, "")
		if seen[id] {
			continue
		}
		seen[id] = true

		rows = append(rows, PlayerRow{
			PlayerName:    truncateNullable(displayName(p.NameFirst, p.NameLast)),
			CurrentHandle: truncateNullable(p.CurrentHandle),
			CountryID:     countries.ResolveNullable(p.CountryCode),
			TotalEarnings: ToNumeric(p.TotalUSDPrize),
			PrimaryGameID: games.ResolveNullable(p.GameName),
		})
	}
	return rows
}

// BuildSalesFacts inner-joins dim_game against the deduplicated population
// snapshot by name and derives the sales measures. Rows without a release
// year are dropped; the game id always resolves because the join starts from
// dim_game.
func BuildSalesFacts(games []GameRecord, snapshot []SnapshotGame) []SalesFact {
	snapshotByName := make(map[string]SnapshotGame)
	for _, s := range snapshot {
		if _, ok := snapshotByName[s.Name]; !ok {
			snapshotByName[s.Name] = s
		}
	}

	var facts []SalesFact
	for _, g := range games {
		s, ok := snapshotByName[g.Name]
		if !ok {
			continue
		}
		if g.Year == nil {
			continue
		}

		estimatedSales := ParseOwnersLow(s.Owners)
		price := PriceMajorUnits(s.PriceCents)

		var revenue *float64
		if estimatedSales != nil && price != nil {
			r := *estimatedSales * *price
			revenue = &r
		}

		facts = append(facts, SalesFact{
			GameID:          g.ID,
			Year:            *g.Year,
			EstimatedSales:  estimatedSales,
			AvgPlaytime:     ToNumeric(s.AvgPlaytime),
			Rating:          g.Rating,
			RevenueEstimate: revenue,
		})
	}
	return facts
}

// BuildEsportsFacts inner-joins the team staging against dim_game by name and
// aggregates per (game, release year): the prize pool sums the parseable
// prizes, the tournament count counts every participation row of the group.
func BuildEsportsFacts(staged []StagedTeam, games []GameRecord) []EsportsFact {
	gameByName := make(map[string]GameRecord)
	for _, g := range games {
		if _, ok := gameByName[g.Name]; !ok {
			gameByName[g.Name] = g
		}
	}

	type groupKey struct {
		gameID int64
		year   int
	}
	groups := make(map[groupKey]*EsportsFact)

	for _, t := range staged {
		if t.GameName == nil {
			continue
		}
		g, ok := gameByName[*t.GameName]
		if !ok || g.Year == nil {
			continue
		}

		key := groupKey{gameID: g.ID, year: *g.Year}
		fact, ok := groups[key]
		if !ok {
			fact = &EsportsFact{GameID: g.ID, Year: *g.Year}
			groups[key] = fact
		}
		if prize := ToNumeric(t.TotalUSDPrize); prize != nil {
			fact.TotalPrizePool += *prize
		}
		fact.NumTournaments++
	}

	facts := make([]EsportsFact, 0, len(groups))
	for _, f := range groups {
		facts = append(facts, *f)
	}
	sort.Slice(facts, func(i, j int) bool {
		if facts[i].GameID != facts[j].GameID {
			return facts[i].GameID < facts[j].GameID
		}
		return facts[i].Year < facts[j].Year
	})
	return facts
}

func cleanFirstPlatform(platforms *string) *string {
	first := FirstToken(platforms)
	if first == nil {
		return nil
	}
	cleaned := StripPlatformQualifier(*first)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

func displayName(first, last *string) *string {
	if first == nil || last == nil {
		return nil
	}
	name := *first + " " + *last
	return &name
}

func truncateNullable(value *string) *string {
	if value == nil {
		return nil
	}
	truncated := TruncateText(*value)
	return &truncated
}

func derefOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}
