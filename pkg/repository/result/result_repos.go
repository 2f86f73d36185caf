package result

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fsrleague/standings-manager-go/pkg/model"
	"github.com/fsrleague/standings-manager-go/pkg/repository"
)

const selectCols = `id, race_id, driver_id, team_id,
	qualifying, qualifying_laps, qualifying_time,
	position, race_laps, race_time, car, car_class, dnf_reason,
	fastest_lap, qualifying_fastest_lap, race_fastest_lap,
	qualifying_fastest_lap_time,
	race_penalty_time, race_penalty_positions, race_penalty_description,
	race_penalty_dsq,
	qualifying_penalty_grid, qualifying_penalty_bog, qualifying_penalty_sfp,
	qualifying_penalty_dsq, qualifying_penalty_description, penalty_points,
	points_multiplier, points_multiplier_description,
	note, subbed_by_id, allocate_points_id,
	finalized, classified, points, gap`

func Create(ctx context.Context, conn repository.Querier, r *model.Result) error {
	return conn.QueryRow(ctx, `
	insert into result (
		race_id, driver_id, team_id,
		qualifying, qualifying_laps, qualifying_time,
		position, race_laps, race_time, car, car_class, dnf_reason,
		fastest_lap, qualifying_fastest_lap, race_fastest_lap,
		qualifying_fastest_lap_time,
		race_penalty_time, race_penalty_positions, race_penalty_description,
		race_penalty_dsq,
		qualifying_penalty_grid, qualifying_penalty_bog, qualifying_penalty_sfp,
		qualifying_penalty_dsq, qualifying_penalty_description, penalty_points,
		points_multiplier, points_multiplier_description,
		note, subbed_by_id, allocate_points_id,
		finalized, classified, points, gap
	) values (
		$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,
		$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34,$35
	) returning id
	`,
		r.RaceID, r.DriverID, r.TeamID,
		r.Qualifying, r.QualifyingLaps, r.QualifyingTime,
		r.Position, r.RaceLaps, r.RaceTime, r.Car, r.CarClass, r.DNFReason,
		r.FastestLap, r.QualifyingFastestLap, r.RaceFastestLap,
		r.QualifyingFastestLapTime,
		r.RacePenaltyTime, r.RacePenaltyPositions, r.RacePenaltyDescription,
		r.RacePenaltyDSQ,
		r.QualifyingPenaltyGrid, r.QualifyingPenaltyBOG, r.QualifyingPenaltySFP,
		r.QualifyingPenaltyDSQ, r.QualifyingPenaltyDescription, r.PenaltyPoints,
		r.PointsMultiplier, r.PointsMultiplierDescription,
		r.Note, r.SubbedByID, r.AllocatePointsID,
		r.Finalized, r.Classified, r.Points, r.Gap,
	).Scan(&r.ID)
}

// GetOrCreate returns the single result for (race, driver), creating it with
// the given team when missing. The unique index on (race_id, driver_id)
// backs the one-result-per-pair invariant.
func GetOrCreate(
	ctx context.Context,
	conn repository.Querier,
	raceID, driverID, teamID int,
) (*model.Result, bool, error) {
	row := conn.QueryRow(ctx,
		fmt.Sprintf("select %s from result where race_id=$1 and driver_id=$2",
			selectCols),
		raceID, driverID)
	existing, err := scanRow(row)
	if errors.Is(err, repository.ErrNotFound) {
		item := &model.Result{
			RaceID: raceID, DriverID: driverID, TeamID: teamID,
			PointsMultiplier: 1.0, Classified: true, Gap: "-",
		}
		if err := Create(ctx, conn, item); err != nil {
			return nil, false, err
		}
		return item, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func LoadByID(ctx context.Context, conn repository.Querier, id int) (
	*model.Result, error,
) {
	row := conn.QueryRow(ctx,
		fmt.Sprintf("select %s from result where id=$1", selectCols), id)
	return scanRow(row)
}

func LoadByRace(ctx context.Context, conn repository.Querier, raceID int) (
	[]*model.Result, error,
) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf("select %s from result where race_id=$1 order by position",
			selectCols), raceID)
	if err != nil {
		return nil, err
	}
	return collectRows(rows)
}

// LoadBySeason returns all results of a season; uptoRound > 0 bounds the
// scope to races up to that round number.
func LoadBySeason(
	ctx context.Context,
	conn repository.Querier,
	seasonID, uptoRound int,
) ([]*model.Result, error) {
	sql := fmt.Sprintf(`
	select %s from result
	where race_id in (select id from race where season_id=$1)
	order by race_id, position`, selectCols)
	args := []interface{}{seasonID}
	if uptoRound > 0 {
		sql = fmt.Sprintf(`
		select %s from result
		where race_id in
			(select id from race where season_id=$1 and round_number<=$2)
		order by race_id, position`, selectCols)
		args = append(args, uptoRound)
	}
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return collectRows(rows)
}

func LoadByDriver(ctx context.Context, conn repository.Querier, driverID int) (
	[]*model.Result, error,
) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf("select %s from result where driver_id=$1 order by race_id",
			selectCols), driverID)
	if err != nil {
		return nil, err
	}
	return collectRows(rows)
}

func Update(ctx context.Context, conn repository.Querier, r *model.Result) error {
	_, err := conn.Exec(ctx, `
	update result set
		race_id=$1, driver_id=$2, team_id=$3,
		qualifying=$4, qualifying_laps=$5, qualifying_time=$6,
		position=$7, race_laps=$8, race_time=$9, car=$10, car_class=$11,
		dnf_reason=$12,
		fastest_lap=$13, qualifying_fastest_lap=$14, race_fastest_lap=$15,
		qualifying_fastest_lap_time=$16,
		race_penalty_time=$17, race_penalty_positions=$18,
		race_penalty_description=$19, race_penalty_dsq=$20,
		qualifying_penalty_grid=$21, qualifying_penalty_bog=$22,
		qualifying_penalty_sfp=$23, qualifying_penalty_dsq=$24,
		qualifying_penalty_description=$25, penalty_points=$26,
		points_multiplier=$27, points_multiplier_description=$28,
		note=$29, subbed_by_id=$30, allocate_points_id=$31,
		finalized=$32, classified=$33, points=$34, gap=$35
	where id=$36
	`,
		r.RaceID, r.DriverID, r.TeamID,
		r.Qualifying, r.QualifyingLaps, r.QualifyingTime,
		r.Position, r.RaceLaps, r.RaceTime, r.Car, r.CarClass, r.DNFReason,
		r.FastestLap, r.QualifyingFastestLap, r.RaceFastestLap,
		r.QualifyingFastestLapTime,
		r.RacePenaltyTime, r.RacePenaltyPositions, r.RacePenaltyDescription,
		r.RacePenaltyDSQ,
		r.QualifyingPenaltyGrid, r.QualifyingPenaltyBOG, r.QualifyingPenaltySFP,
		r.QualifyingPenaltyDSQ, r.QualifyingPenaltyDescription, r.PenaltyPoints,
		r.PointsMultiplier, r.PointsMultiplierDescription,
		r.Note, r.SubbedByID, r.AllocatePointsID,
		r.Finalized, r.Classified, r.Points, r.Gap, r.ID)
	return err
}

// UpdateComputed persists only the fields owned by the points engine.
// Finalized rows are left untouched; returns the number of updated rows.
func UpdateComputed(ctx context.Context, conn repository.Querier, r *model.Result) (
	int, error,
) {
	cmdTag, err := conn.Exec(ctx, `
	update result set classified=$1, points=$2, gap=$3, fastest_lap=$4
	where id=$5 and finalized=false
	`,
		r.Classified, r.Points, r.Gap, r.FastestLap, r.ID)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

// ReassignDriver moves all results from one driver to another, returns the
// number of moved rows.
func ReassignDriver(ctx context.Context, conn repository.Querier, fromID, toID int) (
	int, error,
) {
	cmdTag, err := conn.Exec(ctx,
		"update result set driver_id=$1 where driver_id=$2", toID, fromID)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

// ReassignTeam moves all results from one team to another, returns the
// number of moved rows.
func ReassignTeam(ctx context.Context, conn repository.Querier, fromID, toID int) (
	int, error,
) {
	cmdTag, err := conn.Exec(ctx,
		"update result set team_id=$1 where team_id=$2", toID, fromID)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

// UnfinalizeByRace resets the finalized flag of all results of a race.
func UnfinalizeByRace(ctx context.Context, conn repository.Querier, raceID int) (
	int, error,
) {
	cmdTag, err := conn.Exec(ctx,
		"update result set finalized=false where race_id=$1", raceID)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteByID(ctx context.Context, conn repository.Querier, id int) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from result where id=$1", id)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func collectRows(rows pgx.Rows) ([]*model.Result, error) {
	defer rows.Close()
	ret := []*model.Result{}
	for rows.Next() {
		item, err := scanFields(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

func scanRow(row pgx.Row) (*model.Result, error) {
	item, err := scanFields(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func scanFields(row pgx.Row) (*model.Result, error) {
	var item model.Result
	if err := row.Scan(
		&item.ID, &item.RaceID, &item.DriverID, &item.TeamID,
		&item.Qualifying, &item.QualifyingLaps, &item.QualifyingTime,
		&item.Position, &item.RaceLaps, &item.RaceTime, &item.Car,
		&item.CarClass, &item.DNFReason,
		&item.FastestLap, &item.QualifyingFastestLap, &item.RaceFastestLap,
		&item.QualifyingFastestLapTime,
		&item.RacePenaltyTime, &item.RacePenaltyPositions,
		&item.RacePenaltyDescription, &item.RacePenaltyDSQ,
		&item.QualifyingPenaltyGrid, &item.QualifyingPenaltyBOG,
		&item.QualifyingPenaltySFP, &item.QualifyingPenaltyDSQ,
		&item.QualifyingPenaltyDescription, &item.PenaltyPoints,
		&item.PointsMultiplier, &item.PointsMultiplierDescription,
		&item.Note, &item.SubbedByID, &item.AllocatePointsID,
		&item.Finalized, &item.Classified, &item.Points, &item.Gap,
	); err != nil {
		return nil, err
	}
	return &item, nil
}
