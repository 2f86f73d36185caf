package race

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fsrleague/standings-manager-go/pkg/model"
	"github.com/fsrleague/standings-manager-go/pkg/repository"
)

const selectCols = `id, season_id, point_system_id, round_number, name,
	short_name, start_time, track_id`

func Create(ctx context.Context, conn repository.Querier, r *model.Race) error {
	return conn.QueryRow(ctx, `
	insert into race (
		season_id, point_system_id, round_number, name, short_name,
		start_time, track_id
	) values ($1,$2,$3,$4,$5,$6,$7) returning id
	`,
		r.SeasonID, r.PointSystemID, r.RoundNumber, r.Name, r.ShortName,
		r.StartTime, r.TrackID,
	).Scan(&r.ID)
}

func LoadByID(ctx context.Context, conn repository.Querier, id int) (
	*model.Race, error,
) {
	row := conn.QueryRow(ctx,
		fmt.Sprintf("select %s from race where id=$1", selectCols), id)
	return scanRow(row)
}

func LoadBySeason(ctx context.Context, conn repository.Querier, seasonID int) (
	[]*model.Race, error,
) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf("select %s from race where season_id=$1 order by round_number",
			selectCols), seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := []*model.Race{}
	for rows.Next() {
		var item model.Race
		if err := rows.Scan(&item.ID, &item.SeasonID, &item.PointSystemID,
			&item.RoundNumber, &item.Name, &item.ShortName, &item.StartTime,
			&item.TrackID); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, rows.Err()
}

// LoadByTimeRange returns the races starting within [from, to), used by the
// log file fetcher to find the races of a day.
func LoadByTimeRange(
	ctx context.Context,
	conn repository.Querier,
	from, to time.Time,
) ([]*model.Race, error) {
	rows, err := conn.Query(ctx, fmt.Sprintf(`
	select %s from race where start_time >= $1 and start_time < $2
	order by start_time
	`, selectCols), from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := []*model.Race{}
	for rows.Next() {
		var item model.Race
		if err := rows.Scan(&item.ID, &item.SeasonID, &item.PointSystemID,
			&item.RoundNumber, &item.Name, &item.ShortName, &item.StartTime,
			&item.TrackID); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, rows.Err()
}

// GetOrCreate looks the race up by season, name and round; missing races are
// created. Used by the schedule import.
func GetOrCreate(ctx context.Context, conn repository.Querier, r *model.Race) (
	created bool, err error,
) {
	row := conn.QueryRow(ctx,
		fmt.Sprintf("select %s from race where season_id=$1 and name=$2 and round_number=$3",
			selectCols),
		r.SeasonID, r.Name, r.RoundNumber)
	existing, err := scanRow(row)
	if errors.Is(err, repository.ErrNotFound) {
		return true, Create(ctx, conn, r)
	}
	if err != nil {
		return false, err
	}
	*r = *existing
	return false, nil
}

func Update(ctx context.Context, conn repository.Querier, r *model.Race) error {
	_, err := conn.Exec(ctx, `
	update race set
		season_id=$1, point_system_id=$2, round_number=$3, name=$4,
		short_name=$5, start_time=$6, track_id=$7
	where id=$8
	`,
		r.SeasonID, r.PointSystemID, r.RoundNumber, r.Name, r.ShortName,
		r.StartTime, r.TrackID, r.ID)
	return err
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteByID(ctx context.Context, conn repository.Querier, id int) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from race where id=$1", id)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func scanRow(row pgx.Row) (*model.Race, error) {
	var item model.Race
	if err := row.Scan(&item.ID, &item.SeasonID, &item.PointSystemID,
		&item.RoundNumber, &item.Name, &item.ShortName, &item.StartTime,
		&item.TrackID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}
