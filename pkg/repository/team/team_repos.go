package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fsrleague/standings-manager-go/pkg/model"
	"github.com/fsrleague/standings-manager-go/pkg/repository"
)

const selectCols = "id, name, url, country, parent_id"

func Create(ctx context.Context, conn repository.Querier, t *model.Team) error {
	return conn.QueryRow(ctx, `
	insert into team (name, url, country, parent_id)
	values ($1,$2,$3,$4) returning id
	`,
		t.Name, t.URL, t.Country, t.ParentID,
	).Scan(&t.ID)
}

func LoadByID(ctx context.Context, conn repository.Querier, id int) (
	*model.Team, error,
) {
	row := conn.QueryRow(ctx,
		fmt.Sprintf("select %s from team where id=$1", selectCols), id)
	return scanRow(row)
}

func LoadAll(ctx context.Context, conn repository.Querier) ([]*model.Team, error) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf("select %s from team order by id", selectCols))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := []*model.Team{}
	for rows.Next() {
		var item model.Team
		if err := rows.Scan(&item.ID, &item.Name, &item.URL, &item.Country,
			&item.ParentID); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, rows.Err()
}

// ResultCounts returns the number of results attached to each team.
func ResultCounts(ctx context.Context, conn repository.Querier) (
	map[int]int, error,
) {
	rows, err := conn.Query(ctx,
		"select team_id, count(*) from result group by team_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := map[int]int{}
	for rows.Next() {
		var id, count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, err
		}
		ret[id] = count
	}
	return ret, rows.Err()
}

func Update(ctx context.Context, conn repository.Querier, t *model.Team) error {
	_, err := conn.Exec(ctx, `
	update team set name=$1, url=$2, country=$3, parent_id=$4 where id=$5
	`,
		t.Name, t.URL, t.Country, t.ParentID, t.ID)
	return err
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteByID(ctx context.Context, conn repository.Querier, id int) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from team where id=$1", id)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func scanRow(row pgx.Row) (*model.Team, error) {
	var item model.Team
	if err := row.Scan(&item.ID, &item.Name, &item.URL, &item.Country,
		&item.ParentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}
