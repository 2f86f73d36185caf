package trackrecord

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/fsrleague/standings-manager-go/pkg/model"
	"github.com/fsrleague/standings-manager-go/pkg/repository"
)

// Upsert writes a candidate record for (track, session type). The row is only
// replaced when the candidate lap is strictly faster than the stored one, so
// an equal time keeps the earlier holder.
func Upsert(ctx context.Context, conn repository.Querier, tr *model.TrackRecord) error {
	row := conn.QueryRow(ctx, `
	insert into track_record (
		track_id, season_id, race_id, driver_id, session_type, lap_time
	) values ($1,$2,$3,$4,$5,$6)
	on conflict (track_id, session_type) do update set
		season_id=excluded.season_id,
		race_id=excluded.race_id,
		driver_id=excluded.driver_id,
		lap_time=excluded.lap_time
	where excluded.lap_time < track_record.lap_time
	returning id
	`, tr.TrackID, tr.SeasonID, tr.RaceID, tr.DriverID, tr.SessionType, tr.LapTime)
	if err := row.Scan(&tr.ID); err != nil {
		// the conflict branch did not fire, the existing record stands
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	return nil
}

func LoadByTrack(ctx context.Context, conn repository.Querier, trackID int) (
	[]*model.TrackRecord, error,
) {
	rows, err := conn.Query(ctx, `
	select id, track_id, season_id, race_id, driver_id, session_type, lap_time
	from track_record where track_id=$1 order by session_type
	`, trackID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := []*model.TrackRecord{}
	for rows.Next() {
		var item model.TrackRecord
		if err := rows.Scan(&item.ID, &item.TrackID, &item.SeasonID, &item.RaceID,
			&item.DriverID, &item.SessionType, &item.LapTime); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, rows.Err()
}

func LoadByTrackAndSession(
	ctx context.Context,
	conn repository.Querier,
	trackID int,
	sessionType string,
) (*model.TrackRecord, error) {
	var item model.TrackRecord
	err := conn.QueryRow(ctx, `
	select id, track_id, season_id, race_id, driver_id, session_type, lap_time
	from track_record where track_id=$1 and session_type=$2
	`, trackID, sessionType).Scan(
		&item.ID, &item.TrackID, &item.SeasonID, &item.RaceID,
		&item.DriverID, &item.SessionType, &item.LapTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// deletes all records of a track, returns number of rows deleted.
func DeleteByTrack(ctx context.Context, conn repository.Querier, trackID int) (
	int, error,
) {
	cmdTag, err := conn.Exec(ctx,
		"delete from track_record where track_id=$1", trackID)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}
