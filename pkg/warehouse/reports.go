package warehouse

// Report rows returned by the analytical queries over the warehouse.

type GenreRevenue struct {
	GenreName    string  `json:"genre_name"`
	TotalRevenue float64 `json:"total_revenue"`
}

// GameRevenue is one game of a genre drill-down.
type GameRevenue struct {
	GameName     string  `json:"game_name"`
	TotalRevenue float64 `json:"total_revenue"`
}

type PlatformRevenue struct {
	PlatformName string          `json:"platform_name"`
	ByYear       map[int]float64 `json:"by_year"`
	TotalRevenue float64         `json:"total_revenue"`
}

type GamePlaytime struct {
	GameName        string  `json:"game_name"`
	GenreName       string  `json:"genre_name"`
	PlatformName    string  `json:"platform_name"`
	AveragePlaytime float64 `json:"average_playtime"`
}

type EcosystemValue struct {
	GameName            string  `json:"game_name"`
	TournamentPrizes    float64 `json:"tournament_prizes"`
	PlayerEarnings      float64 `json:"player_earnings"`
	TeamEarnings        float64 `json:"team_earnings"`
	TotalEcosystemValue float64 `json:"total_ecosystem_value"`
}

type EarningsComparison struct {
	GameName            string  `json:"game_name"`
	TotalPlayerEarnings float64 `json:"total_player_earnings"`
	TotalTeamEarnings   float64 `json:"total_team_earnings"`
}
