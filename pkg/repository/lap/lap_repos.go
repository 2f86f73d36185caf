package lap

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fsrleague/standings-manager-go/pkg/model"
	"github.com/fsrleague/standings-manager-go/pkg/repository"
)

const selectCols = `id, result_id, session, lap_number, position, pitstop,
	sector_1, sector_2, sector_3, lap_time, race_time, compound`

func Create(ctx context.Context, conn repository.Querier, l *model.Lap) error {
	return conn.QueryRow(ctx, `
	insert into lap (
		result_id, session, lap_number, position, pitstop,
		sector_1, sector_2, sector_3, lap_time, race_time, compound
	) values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11) returning id
	`,
		l.ResultID, l.Session, l.LapNumber, l.Position, l.Pitstop,
		l.Sector1, l.Sector2, l.Sector3, l.LapTime, l.RaceTime, l.Compound,
	).Scan(&l.ID)
}

// GetOrCreate returns the lap keyed by (result, session, lap number),
// creating an empty one when missing.
func GetOrCreate(
	ctx context.Context,
	conn repository.Querier,
	resultID int,
	session string,
	lapNumber int,
) (*model.Lap, bool, error) {
	row := conn.QueryRow(ctx, fmt.Sprintf(`
	select %s from lap where result_id=$1 and session=$2 and lap_number=$3
	`, selectCols), resultID, session, lapNumber)
	existing, err := scanRow(row)
	if errors.Is(err, repository.ErrNotFound) {
		item := &model.Lap{ResultID: resultID, Session: session, LapNumber: lapNumber}
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

func Update(ctx context.Context, conn repository.Querier, l *model.Lap) error {
	_, err := conn.Exec(ctx, `
	update lap set
		result_id=$1, session=$2, lap_number=$3, position=$4, pitstop=$5,
		sector_1=$6, sector_2=$7, sector_3=$8, lap_time=$9, race_time=$10,
		compound=$11
	where id=$12
	`,
		l.ResultID, l.Session, l.LapNumber, l.Position, l.Pitstop,
		l.Sector1, l.Sector2, l.Sector3, l.LapTime, l.RaceTime, l.Compound, l.ID)
	return err
}

func LoadByResult(
	ctx context.Context,
	conn repository.Querier,
	resultID int,
	session string,
) ([]*model.Lap, error) {
	rows, err := conn.Query(ctx, fmt.Sprintf(`
	select %s from lap where result_id=$1 and session=$2 order by lap_number
	`, selectCols), resultID, session)
	if err != nil {
		return nil, err
	}
	return collectRows(rows)
}

// LoadByRace returns all laps of one session across every result of a race.
func LoadByRace(
	ctx context.Context,
	conn repository.Querier,
	raceID int,
	session string,
) ([]*model.Lap, error) {
	rows, err := conn.Query(ctx, fmt.Sprintf(`
	select %s from lap
	where session=$2 and result_id in (select id from result where race_id=$1)
	order by result_id, lap_number
	`, selectCols), raceID, session)
	if err != nil {
		return nil, err
	}
	return collectRows(rows)
}

// deletes all laps of a result, returns number of rows deleted.
func DeleteByResult(ctx context.Context, conn repository.Querier, resultID int) (
	int, error,
) {
	cmdTag, err := conn.Exec(ctx, "delete from lap where result_id=$1", resultID)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func collectRows(rows pgx.Rows) ([]*model.Lap, error) {
	defer rows.Close()
	ret := []*model.Lap{}
	for rows.Next() {
		var item model.Lap
		if err := rows.Scan(&item.ID, &item.ResultID, &item.Session,
			&item.LapNumber, &item.Position, &item.Pitstop,
			&item.Sector1, &item.Sector2, &item.Sector3,
			&item.LapTime, &item.RaceTime, &item.Compound); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, rows.Err()
}

func scanRow(row pgx.Row) (*model.Lap, error) {
	var item model.Lap
	if err := row.Scan(&item.ID, &item.ResultID, &item.Session,
		&item.LapNumber, &item.Position, &item.Pitstop,
		&item.Sector1, &item.Sector2, &item.Sector3,
		&item.LapTime, &item.RaceTime, &item.Compound); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}
