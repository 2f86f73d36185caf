package pointsystem

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/fsrleague/standings-manager-go/pkg/model"
	"github.com/fsrleague/standings-manager-go/pkg/repository"
)

func Create(ctx context.Context, conn repository.Querier, ps *model.PointSystem) error {
	return conn.QueryRow(ctx, `
	insert into point_system (
		name, race_points, qualifying_points,
		pole_position, lead_lap, fastest_lap, most_laps_lead
	) values ($1,$2,$3,$4,$5,$6,$7) returning id
	`,
		ps.Name, ps.RacePoints, ps.QualifyingPoints,
		ps.PolePosition, ps.LeadLap, ps.FastestLap, ps.MostLapsLead,
	).Scan(&ps.ID)
}

func LoadByID(ctx context.Context, conn repository.Querier, id int) (
	*model.PointSystem, error,
) {
	row := conn.QueryRow(ctx, `
	select id, name, race_points, qualifying_points,
		pole_position, lead_lap, fastest_lap, most_laps_lead
	from point_system where id=$1
	`, id)
	var item model.PointSystem
	if err := row.Scan(&item.ID, &item.Name, &item.RacePoints, &item.QualifyingPoints,
		&item.PolePosition, &item.LeadLap, &item.FastestLap, &item.MostLapsLead,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteByID(ctx context.Context, conn repository.Querier, id int) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from point_system where id=$1", id)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}
