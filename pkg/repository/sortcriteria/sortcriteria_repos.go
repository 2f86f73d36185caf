package sortcriteria

import (
	"context"

	"github.com/fsrleague/standings-manager-go/pkg/repository"
)

// Upsert records the best ever finish of a driver in a season; an existing
// better finish is kept.
func Upsert(
	ctx context.Context,
	conn repository.Querier,
	seasonID, driverID, bestFinish int,
) error {
	_, err := conn.Exec(ctx, `
	insert into sort_criteria (season_id, driver_id, best_finish)
	values ($1,$2,$3)
	on conflict (season_id, driver_id) do update
	set best_finish = excluded.best_finish
	where sort_criteria.best_finish = 0
		or excluded.best_finish < sort_criteria.best_finish
	`, seasonID, driverID, bestFinish)
	return err
}

// LoadBySeason returns driver id -> best finish for the season.
func LoadBySeason(ctx context.Context, conn repository.Querier, seasonID int) (
	map[int]int, error,
) {
	rows, err := conn.Query(ctx,
		"select driver_id, best_finish from sort_criteria where season_id=$1",
		seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := map[int]int{}
	for rows.Next() {
		var driverID, bestFinish int
		if err := rows.Scan(&driverID, &bestFinish); err != nil {
			return nil, err
		}
		ret[driverID] = bestFinish
	}
	return ret, rows.Err()
}
