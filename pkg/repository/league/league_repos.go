package league

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/fsrleague/standings-manager-go/pkg/model"
	"github.com/fsrleague/standings-manager-go/pkg/repository"
)

func Create(ctx context.Context, conn repository.Querier, l *model.League) error {
	return conn.QueryRow(ctx,
		"insert into league (name) values ($1) returning id", l.Name,
	).Scan(&l.ID)
}

func LoadAll(ctx context.Context, conn repository.Querier) ([]*model.League, error) {
	rows, err := conn.Query(ctx, "select id, name from league order by name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := []*model.League{}
	for rows.Next() {
		var item model.League
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, rows.Err()
}

func CreateDivision(ctx context.Context, conn repository.Querier, d *model.Division) error {
	return conn.QueryRow(ctx, `
	insert into division (league_id, name, description, url, sort_order)
	values ($1,$2,$3,$4,$5) returning id
	`,
		d.LeagueID, d.Name, d.Description, d.URL, d.Order,
	).Scan(&d.ID)
}

func LoadDivisionByID(ctx context.Context, conn repository.Querier, id int) (
	*model.Division, error,
) {
	row := conn.QueryRow(ctx, `
	select id, league_id, name, description, url, sort_order
	from division where id=$1
	`, id)
	var item model.Division
	if err := row.Scan(&item.ID, &item.LeagueID, &item.Name, &item.Description,
		&item.URL, &item.Order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}
