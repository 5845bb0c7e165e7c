package warehouse

// Staging rows carry the source values exactly as loaded, with every optional
// or source-typed field as a nullable string. Numeric conversion is a transform
// concern, not a staging concern.

type CatalogGame struct {
	Name       string
	Developers *string
	Publishers *string
	Released   *string
	Genres     *string
	Platforms  *string
	Rating     *string
	Metacritic *string
}

type SnapshotGame struct {
	Name            string
	ConcurrentUsers *string
	PriceCents      *string
	AvgPlaytime     *string
	Owners          *string
}

type StagedCountry struct {
	ContinentName *string
	CountryName   *string
	CountryCode   *string
}

type StagedTeam struct {
	TeamID        *string
	TeamName      *string
	GameName      *string
	TotalUSDPrize *string
}

type StagedPlayer struct {
	PlayerID      *string
	NameFirst     *string
	NameLast      *string
	CurrentHandle *string
	CountryCode   *string
	GameName      *string
	TotalUSDPrize *string
}
