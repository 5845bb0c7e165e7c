package services

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/notredoo/videogames-dw/pkg/warehouse"
	"github.com/notredoo/videogames-dw/pkg/warehouse/queries"
)

func (s *Storage) TotalRevenueByGenre() ([]warehouse.GenreRevenue, error) {
	rows, err := s.pool.Query(context.Background(), queries.TotalRevenueByGenre())
	if err != nil {
		return nil, errors.Wrap(err, "[storage error] unable to query revenue by genre")
	}
	defer rows.Close()

	var report []warehouse.GenreRevenue
	for rows.Next() {
		var r warehouse.GenreRevenue
		var revenue *float64
		if err := rows.Scan(&r.GenreName, &revenue); err != nil {
			return nil, errors.Wrap(err, "[storage error] unable to scan genre revenue")
		}
		if revenue != nil {
			r.TotalRevenue = *revenue
		}
		report = append(report, r)
	}
	return report, rows.Err()
}

func (s *Storage) TotalRevenueByGamePerGenre(genre string) ([]warehouse.GameRevenue, error) {
	rows, err := s.pool.Query(context.Background(), queries.TotalRevenueByGamePerGenre(), genre)
	if err != nil {
		return nil, errors.Wrap(err, "[storage error] unable to query revenue by game for genre")
	}
	defer rows.Close()

	var report []warehouse.GameRevenue
	for rows.Next() {
		var r warehouse.GameRevenue
		if err := rows.Scan(&r.GameName, &r.TotalRevenue); err != nil {
			return nil, errors.Wrap(err, "[storage error] unable to scan game revenue")
		}
		report = append(report, r)
	}
	return report, rows.Err()
}

func (s *Storage) RevenueByPlatformAndYear(years []int) ([]warehouse.PlatformRevenue, error) {
	if len(years) == 0 {
		return nil, nil
	}
	wanted := make([]int32, len(years))
	for i, y := range years {
		wanted[i] = int32(y)
	}

	rows, err := s.pool.Query(context.Background(), queries.RevenueByPlatformAndYear(), wanted)
	if err != nil {
		return nil, errors.Wrap(err, "[storage error] unable to query revenue by platform and year")
	}
	defer rows.Close()

	byPlatform := make(map[string]*warehouse.PlatformRevenue)
	var order []string
	for rows.Next() {
		var platform string
		var year int
		var revenue *float64
		if err := rows.Scan(&platform, &year, &revenue); err != nil {
			return nil, errors.Wrap(err, "[storage error] unable to scan platform revenue")
		}

		entry, ok := byPlatform[platform]
		if !ok {
			entry = &warehouse.PlatformRevenue{
				PlatformName: platform,
				ByYear:       make(map[int]float64),
			}
			byPlatform[platform] = entry
			order = append(order, platform)
		}
		if revenue != nil {
			entry.ByYear[year] = *revenue
			entry.TotalRevenue += *revenue
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	report := make([]warehouse.PlatformRevenue, 0, len(order))
	for _, p := range order {
		report = append(report, *byPlatform[p])
	}
	sort.Slice(report, func(i, j int) bool {
		return report[i].TotalRevenue > report[j].TotalRevenue
	})
	return report, nil
}

func (s *Storage) TopPlaytimeGames(genre, platform string) ([]warehouse.GamePlaytime, error) {
	rows, err := s.pool.Query(context.Background(), queries.TopPlaytimeGames(), genre, platform)
	if err != nil {
		return nil, errors.Wrap(err, "[storage error] unable to query top playtime games")
	}
	defer rows.Close()

	var report []warehouse.GamePlaytime
	for rows.Next() {
		var r warehouse.GamePlaytime
		if err := rows.Scan(&r.GameName, &r.GenreName, &r.PlatformName, &r.AveragePlaytime); err != nil {
			return nil, errors.Wrap(err, "[storage error] unable to scan game playtime")
		}
		report = append(report, r)
	}
	return report, rows.Err()
}

func (s *Storage) EsportsEcosystem() ([]warehouse.EcosystemValue, error) {
	rows, err := s.pool.Query(context.Background(), queries.EsportsEcosystem())
	if err != nil {
		return nil, errors.Wrap(err, "[storage error] unable to query esports ecosystem")
	}
	defer rows.Close()

	var report []warehouse.EcosystemValue
	for rows.Next() {
		var r warehouse.EcosystemValue
		err := rows.Scan(
			&r.GameName,
			&r.TournamentPrizes,
			&r.PlayerEarnings,
			&r.TeamEarnings,
			&r.TotalEcosystemValue)
		if err != nil {
			return nil, errors.Wrap(err, "[storage error] unable to scan ecosystem value")
		}
		report = append(report, r)
	}
	return report, rows.Err()
}

func (s *Storage) PlayerVsTeamEarnings() ([]warehouse.EarningsComparison, error) {
	rows, err := s.pool.Query(context.Background(), queries.PlayerVsTeamEarnings())
	if err != nil {
		return nil, errors.Wrap(err, "[storage error] unable to query player vs team earnings")
	}
	defer rows.Close()

	var report []warehouse.EarningsComparison
	for rows.Next() {
		var r warehouse.EarningsComparison
		if err := rows.Scan(&r.GameName, &r.TotalPlayerEarnings, &r.TotalTeamEarnings); err != nil {
			return nil, errors.Wrap(err, "[storage error] unable to scan earnings comparison")
		}
		report = append(report, r)
	}
	return report, rows.Err()
}

func (s *Storage) AvailableYears() ([]int, error) {
	rows, err := s.pool.Query(context.Background(), queries.AvailableYears())
	if err != nil {
		return nil, errors.Wrap(err, "[storage error] unable to query available years")
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, errors.Wrap(err, "[storage error] unable to scan year")
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// AvailableNames runs one of the distinct-name helper queries.
func (s *Storage) AvailableNames(query string) ([]string, error) {
	rows, err := s.pool.Query(context.Background(), query)
	if err != nil {
		return nil, errors.Wrap(err, "[storage error] unable to query available names")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, errors.Wrap(err, "[storage error] unable to scan name")
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
