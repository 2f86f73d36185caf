package seasonstats

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fsrleague/standings-manager-go/pkg/model"
	"github.com/fsrleague/standings-manager-go/pkg/repository"
)

const selectCols = `id, season_id, driver_id, wins, podiums, points_finishes,
	pole_positions, fastest_laps, laps_lead, laps_completed, attendance,
	penalty_points, race_penalty_time, race_penalty_positions, race_penalty_dsq,
	qualifying_penalty_grid, qualifying_penalty_bog, qualifying_penalty_sfp,
	qualifying_penalty_dsq,
	race_positions, qualifying_positions, dnf_reasons,
	points, best_result_id, best_finish, position, winner`

// Upsert replaces the full roll-up row for (season, driver). SeasonStats is
// a materialized view; it is always written as a whole.
func Upsert(ctx context.Context, conn repository.Querier, s *model.SeasonStats) error {
	return conn.QueryRow(ctx, `
	insert into season_stats (
		season_id, driver_id, wins, podiums, points_finishes,
		pole_positions, fastest_laps, laps_lead, laps_completed, attendance,
		penalty_points, race_penalty_time, race_penalty_positions,
		race_penalty_dsq, qualifying_penalty_grid, qualifying_penalty_bog,
		qualifying_penalty_sfp, qualifying_penalty_dsq,
		race_positions, qualifying_positions, dnf_reasons,
		points, best_result_id, best_finish, position, winner
	) values (
		$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,
		$19,$20,$21,$22,$23,$24,$25,$26
	)
	on conflict (season_id, driver_id) do update set
		wins=excluded.wins, podiums=excluded.podiums,
		points_finishes=excluded.points_finishes,
		pole_positions=excluded.pole_positions,
		fastest_laps=excluded.fastest_laps, laps_lead=excluded.laps_lead,
		laps_completed=excluded.laps_completed, attendance=excluded.attendance,
		penalty_points=excluded.penalty_points,
		race_penalty_time=excluded.race_penalty_time,
		race_penalty_positions=excluded.race_penalty_positions,
		race_penalty_dsq=excluded.race_penalty_dsq,
		qualifying_penalty_grid=excluded.qualifying_penalty_grid,
		qualifying_penalty_bog=excluded.qualifying_penalty_bog,
		qualifying_penalty_sfp=excluded.qualifying_penalty_sfp,
		qualifying_penalty_dsq=excluded.qualifying_penalty_dsq,
		race_positions=excluded.race_positions,
		qualifying_positions=excluded.qualifying_positions,
		dnf_reasons=excluded.dnf_reasons,
		points=excluded.points, best_result_id=excluded.best_result_id,
		best_finish=excluded.best_finish, position=excluded.position,
		winner=excluded.winner
	returning id
	`,
		s.SeasonID, s.DriverID, s.Wins, s.Podiums, s.PointsFinishes,
		s.PolePositions, s.FastestLaps, s.LapsLead, s.LapsCompleted, s.Attendance,
		s.PenaltyPoints, s.RacePenaltyTime, s.RacePenaltyPositions,
		s.RacePenaltyDSQ, s.QualifyingPenaltyGrid, s.QualifyingPenaltyBOG,
		s.QualifyingPenaltySFP, s.QualifyingPenaltyDSQ,
		s.RacePositions, s.QualifyingPositions, s.DNFReasons,
		s.Points, s.BestResultID, s.BestFinish, s.Position, s.Winner,
	).Scan(&s.ID)
}

func LoadBySeason(ctx context.Context, conn repository.Querier, seasonID int) (
	[]*model.SeasonStats, error,
) {
	rows, err := conn.Query(ctx, fmt.Sprintf(`
	select %s from season_stats where season_id=$1 order by wins desc, points desc
	`, selectCols), seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := []*model.SeasonStats{}
	for rows.Next() {
		item, err := scanFields(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

func LoadBySeasonAndDriver(
	ctx context.Context,
	conn repository.Querier,
	seasonID, driverID int,
) (*model.SeasonStats, error) {
	row := conn.QueryRow(ctx, fmt.Sprintf(`
	select %s from season_stats where season_id=$1 and driver_id=$2
	`, selectCols), seasonID, driverID)
	item, err := scanFields(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// deletes all stats of a season, returns number of rows deleted.
func DeleteBySeason(ctx context.Context, conn repository.Querier, seasonID int) (
	int, error,
) {
	cmdTag, err := conn.Exec(ctx,
		"delete from season_stats where season_id=$1", seasonID)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func scanFields(row pgx.Row) (*model.SeasonStats, error) {
	var item model.SeasonStats
	if err := row.Scan(
		&item.ID, &item.SeasonID, &item.DriverID, &item.Wins, &item.Podiums,
		&item.PointsFinishes, &item.PolePositions, &item.FastestLaps,
		&item.LapsLead, &item.LapsCompleted, &item.Attendance,
		&item.PenaltyPoints, &item.RacePenaltyTime, &item.RacePenaltyPositions,
		&item.RacePenaltyDSQ, &item.QualifyingPenaltyGrid,
		&item.QualifyingPenaltyBOG, &item.QualifyingPenaltySFP,
		&item.QualifyingPenaltyDSQ,
		&item.RacePositions, &item.QualifyingPositions, &item.DNFReasons,
		&item.Points, &item.BestResultID, &item.BestFinish, &item.Position,
		&item.Winner,
	); err != nil {
		return nil, err
	}
	return &item, nil
}
