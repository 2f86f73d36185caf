package track

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/fsrleague/standings-manager-go/pkg/model"
	"github.com/fsrleague/standings-manager-go/pkg/repository"
)

func Create(ctx context.Context, conn repository.Querier, t *model.Track) error {
	return conn.QueryRow(ctx, `
	insert into track (name, track_length, version, country)
	values ($1,$2,$3,$4) returning id
	`,
		t.Name, t.Length, t.Version, t.Country,
	).Scan(&t.ID)
}

func LoadByID(ctx context.Context, conn repository.Querier, id int) (
	*model.Track, error,
) {
	row := conn.QueryRow(ctx, `
	select id, name, track_length, version, country from track where id=$1
	`, id)
	return scanRow(row)
}

func LoadAll(ctx context.Context, conn repository.Querier) ([]*model.Track, error) {
	rows, err := conn.Query(ctx,
		"select id, name, track_length, version, country from track order by id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := []*model.Track{}
	for rows.Next() {
		var item model.Track
		if err := rows.Scan(&item.ID, &item.Name, &item.Length, &item.Version,
			&item.Country); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, rows.Err()
}

// EnsureTrack creates the track unless one with the same name and version
// already exists.
func EnsureTrack(ctx context.Context, conn repository.Querier, t *model.Track) error {
	row := conn.QueryRow(ctx, `
	select id, name, track_length, version, country from track
	where name=$1 and version=$2
	`, t.Name, t.Version)
	existing, err := scanRow(row)
	if errors.Is(err, repository.ErrNotFound) {
		return Create(ctx, conn, t)
	}
	if err != nil {
		return err
	}
	*t = *existing
	return nil
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteByID(ctx context.Context, conn repository.Querier, id int) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from track where id=$1", id)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func scanRow(row pgx.Row) (*model.Track, error) {
	var item model.Track
	if err := row.Scan(&item.ID, &item.Name, &item.Length, &item.Version,
		&item.Country); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}
