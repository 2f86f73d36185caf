package season

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fsrleague/standings-manager-go/pkg/model"
	"github.com/fsrleague/standings-manager-go/pkg/repository"
)

const selectCols = `id, division_id, name, description, start_date, end_date,
	finalized, point_system_id, classification_type, percent_classified,
	laps_classified, teams_disabled, use_position`

func Create(ctx context.Context, conn repository.Querier, s *model.Season) error {
	return conn.QueryRow(ctx, `
	insert into season (
		division_id, name, description, start_date, end_date, finalized,
		point_system_id, classification_type, percent_classified,
		laps_classified, teams_disabled, use_position
	) values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12) returning id
	`,
		s.DivisionID, s.Name, s.Description, s.StartDate, s.EndDate, s.Finalized,
		s.PointSystemID, s.ClassificationType, s.PercentClassified,
		s.LapsClassified, s.TeamsDisabled, s.UsePosition,
	).Scan(&s.ID)
}

func LoadByID(ctx context.Context, conn repository.Querier, id int) (
	*model.Season, error,
) {
	row := conn.QueryRow(ctx,
		fmt.Sprintf("select %s from season where id=$1", selectCols), id)
	return scanRow(row)
}

func LoadAll(ctx context.Context, conn repository.Querier) ([]*model.Season, error) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf("select %s from season order by start_date", selectCols))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := []*model.Season{}
	for rows.Next() {
		item, err := scanRows(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

func Update(ctx context.Context, conn repository.Querier, s *model.Season) error {
	_, err := conn.Exec(ctx, `
	update season set
		division_id=$1, name=$2, description=$3, start_date=$4, end_date=$5,
		finalized=$6, point_system_id=$7, classification_type=$8,
		percent_classified=$9, laps_classified=$10, teams_disabled=$11,
		use_position=$12
	where id=$13
	`,
		s.DivisionID, s.Name, s.Description, s.StartDate, s.EndDate, s.Finalized,
		s.PointSystemID, s.ClassificationType, s.PercentClassified,
		s.LapsClassified, s.TeamsDisabled, s.UsePosition, s.ID)
	return err
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteByID(ctx context.Context, conn repository.Querier, id int) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from season where id=$1", id)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func scanRow(row pgx.Row) (*model.Season, error) {
	var item model.Season
	if err := row.Scan(&item.ID, &item.DivisionID, &item.Name, &item.Description,
		&item.StartDate, &item.EndDate, &item.Finalized, &item.PointSystemID,
		&item.ClassificationType, &item.PercentClassified, &item.LapsClassified,
		&item.TeamsDisabled, &item.UsePosition); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func scanRows(rows pgx.Rows) (*model.Season, error) {
	var item model.Season
	if err := rows.Scan(&item.ID, &item.DivisionID, &item.Name, &item.Description,
		&item.StartDate, &item.EndDate, &item.Finalized, &item.PointSystemID,
		&item.ClassificationType, &item.PercentClassified, &item.LapsClassified,
		&item.TeamsDisabled, &item.UsePosition); err != nil {
		return nil, err
	}
	return &item, nil
}
