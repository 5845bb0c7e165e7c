package warehouse

type SalesFact struct {
	GameID          int64
	Year            int
	EstimatedSales  *float64
	AvgPlaytime     *float64
	Rating          *float64
	RevenueEstimate *float64
}

type EsportsFact struct {
	GameID         int64
	Year           int
	TotalPrizePool float64
	// NumTournaments counts team-participation rows per game and year, not
	// distinct tournament identifiers. The source carries no tournament id,
	// so the count is a proxy metric.
	NumTournaments int
}
