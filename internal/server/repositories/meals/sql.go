package meals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/foodlog/internal/common"
	"github.com/dmitrijs2005/foodlog/internal/dbx"
	"github.com/dmitrijs2005/foodlog/internal/server/models"
	"github.com/google/uuid"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

const selectMeal = `
	SELECT id, user_id, name, category, meal_date, image_url, image_path, created_at, updated_at
	FROM meals
`

func (r *SQLRepository) Create(ctx context.Context, meal *models.Meal) error {
	if meal.ID == "" {
		meal.ID = uuid.NewString()
	}
	if meal.CreatedAt.IsZero() {
		meal.CreatedAt = time.Now().UTC()
	}
	meal.UpdatedAt = meal.CreatedAt

	query := `
		INSERT INTO meals (id, user_id, name, category, meal_date, image_url, image_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		meal.ID, meal.UserID, meal.Name, meal.Category, meal.Date,
		meal.ImageURL, meal.ImagePath, meal.CreatedAt, meal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Update(ctx context.Context, meal *models.Meal) error {
	meal.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE meals
		SET name = $1, category = $2, meal_date = $3, image_url = $4, image_path = $5, updated_at = $6
		WHERE id = $7 AND user_id = $8
	`
	res, err := r.db.ExecContext(ctx, query,
		meal.Name, meal.Category, meal.Date, meal.ImageURL, meal.ImagePath, meal.UpdatedAt,
		meal.ID, meal.UserID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectAffected(res)
}

func (r *SQLRepository) GetByID(ctx context.Context, userID, id string) (*models.Meal, error) {
	row := r.db.QueryRowContext(ctx, selectMeal+` WHERE id = $1 AND user_id = $2`, id, userID)

	m, err := scanMeal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *SQLRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM meals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectAffected(res)
}

func (r *SQLRepository) List(ctx context.Context, userID string, filter models.MealFilter) ([]*models.Meal, error) {
	query, args := listQuery(userID, filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Meal
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// listQuery builds the filtered listing. The search term matches name,
// category or date as a case-insensitive substring.
func listQuery(userID string, filter models.MealFilter) (string, []any) {
	var b strings.Builder
	b.WriteString(selectMeal)
	b.WriteString(` WHERE user_id = $1`)
	args := []any{userID}

	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if term := strings.ToLower(strings.TrimSpace(filter.Query)); term != "" {
		p := next("%" + escapeLike(term) + "%")
		fmt.Fprintf(&b, ` AND (LOWER(name) LIKE %[1]s ESCAPE '\' OR LOWER(category) LIKE %[1]s ESCAPE '\' OR meal_date LIKE %[1]s ESCAPE '\')`, p)
	}
	if filter.From != "" {
		fmt.Fprintf(&b, ` AND meal_date >= %s`, next(filter.From))
	}
	if filter.To != "" {
		fmt.Fprintf(&b, ` AND meal_date <= %s`, next(filter.To))
	}

	b.WriteString(` ORDER BY meal_date DESC, created_at DESC`)
	return b.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

type scanner interface {
	Scan(dest ...any) error
}

func scanMeal(s scanner) (*models.Meal, error) {
	m := &models.Meal{}
	err := s.Scan(&m.ID, &m.UserID, &m.Name, &m.Category, &m.Date,
		&m.ImageURL, &m.ImagePath, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}
