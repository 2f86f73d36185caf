package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fsrleague/standings-manager-go/pkg/model"
	"github.com/fsrleague/standings-manager-go/pkg/repository"
)

const selectCols = "id, name, country, short_name, birthday, city, helmet"

func Create(ctx context.Context, conn repository.Querier, d *model.Driver) error {
	return conn.QueryRow(ctx, `
	insert into driver (name, country, short_name, birthday, city, helmet)
	values ($1,$2,$3,$4,$5,$6) returning id
	`,
		d.Name, d.Country, d.ShortName, d.Birthday, d.City, d.Helmet,
	).Scan(&d.ID)
}

func LoadByID(ctx context.Context, conn repository.Querier, id int) (
	*model.Driver, error,
) {
	row := conn.QueryRow(ctx,
		fmt.Sprintf("select %s from driver where id=$1", selectCols), id)
	return scanRow(row)
}

func LoadAll(ctx context.Context, conn repository.Querier) ([]*model.Driver, error) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf("select %s from driver order by id", selectCols))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := []*model.Driver{}
	for rows.Next() {
		var item model.Driver
		if err := rows.Scan(&item.ID, &item.Name, &item.Country, &item.ShortName,
			&item.Birthday, &item.City, &item.Helmet); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, rows.Err()
}

// ResultCounts returns the number of results attached to each driver.
func ResultCounts(ctx context.Context, conn repository.Querier) (
	map[int]int, error,
) {
	rows, err := conn.Query(ctx,
		"select driver_id, count(*) from result group by driver_id")
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

func Update(ctx context.Context, conn repository.Querier, d *model.Driver) error {
	_, err := conn.Exec(ctx, `
	update driver set name=$1, country=$2, short_name=$3, birthday=$4, city=$5, helmet=$6
	where id=$7
	`,
		d.Name, d.Country, d.ShortName, d.Birthday, d.City, d.Helmet, d.ID)
	return err
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteByID(ctx context.Context, conn repository.Querier, id int) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from driver where id=$1", id)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func scanRow(row pgx.Row) (*model.Driver, error) {
	var item model.Driver
	if err := row.Scan(&item.ID, &item.Name, &item.Country, &item.ShortName,
		&item.Birthday, &item.City, &item.Helmet); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}
