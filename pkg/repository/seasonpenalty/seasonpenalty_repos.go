package seasonpenalty

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsrleague/standings-manager-go/pkg/model"
	"github.com/fsrleague/standings-manager-go/pkg/repository"
)

func Create(ctx context.Context, conn repository.Querier, p *model.SeasonPenalty) error {
	return conn.QueryRow(ctx, `
	insert into season_penalty (season_id, driver_id, team_id, points, disqualified)
	values ($1,$2,$3,$4,$5) returning id
	`,
		p.SeasonID, p.DriverID, p.TeamID, p.Points, p.Disqualified,
	).Scan(&p.ID)
}

func LoadBySeason(ctx context.Context, conn repository.Querier, seasonID int) (
	[]*model.SeasonPenalty, error,
) {
	rows, err := conn.Query(ctx, `
	select id, season_id, driver_id, team_id, points, disqualified
	from season_penalty where season_id=$1 order by id
	`, seasonID)
	if err != nil {
		return nil, err
	}
	return collectRows(rows)
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteByID(ctx context.Context, conn repository.Querier, id int) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from season_penalty where id=$1", id)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func collectRows(rows pgx.Rows) ([]*model.SeasonPenalty, error) {
	defer rows.Close()
	ret := []*model.SeasonPenalty{}
	for rows.Next() {
		var item model.SeasonPenalty
		if err := rows.Scan(&item.ID, &item.SeasonID, &item.DriverID,
			&item.TeamID, &item.Points, &item.Disqualified); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, rows.Err()
}
