package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edushield/edushield/internal/models"
)

// CreateGrant вставляет новую запись о выданном доступе и возвращает её.
// Дедупликации по паре (user_uid, course_id) нет намеренно: допускается
// несколько параллельных грантов, при проверке доступа достаточно любого
// действующего.
func (s *Storage) CreateGrant(ctx context.Context, grant models.Grant) (*models.Grant, error) {
	const op = "storage.CreateGrant"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO course_access (user_uid, course_id, access_type, expiry_date, is_active)
			  VALUES ($1, $2, $3, $4, TRUE)
			  RETURNING id, created_at`
	if err := s.DB.QueryRowContext(ctx, query,
		grant.UserUID, grant.CourseID, grant.AccessType, grant.ExpiryDate).
		Scan(&grant.ID, &grant.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	grant.IsActive = true
	return &grant, nil
}

// DeactivateGrants снимает флаг активности со всех действующих грантов
// пары (user_uid, course_id) и возвращает число затронутых строк.
// Записи не удаляются — история отзывов сохраняется.
func (s *Storage) DeactivateGrants(ctx context.Context, userUID string, courseID int) (int, error) {
	const op = "storage.DeactivateGrants"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE course_access
			  SET is_active = FALSE
			  WHERE user_uid = $1 AND course_id = $2 AND is_active = TRUE`
	result, err := s.DB.ExecContext(ctx, query, userUID, courseID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListGrantsByUser возвращает все гранты пользователя, включая отозванные.
func (s *Storage) ListGrantsByUser(ctx context.Context, userUID string) ([]models.Grant, error) {
	const op = "storage.ListGrantsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, course_id, access_type, expiry_date, is_active, created_at
			  FROM course_access
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Grant
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListActiveGrants возвращает активные гранты пары (user_uid, course_id).
// Истечение срока здесь не проверяется: это решение уровня бизнес-логики
// с её собственными часами.
func (s *Storage) ListActiveGrants(ctx context.Context, userUID string, courseID int) ([]models.Grant, error) {
	const op = "storage.ListActiveGrants"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, course_id, access_type, expiry_date, is_active, created_at
			  FROM course_access
			  WHERE user_uid = $1 AND course_id = $2 AND is_active = TRUE`
	rows, err := s.DB.QueryContext(ctx, query, userUID, courseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Grant
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanGrant(rows *sql.Rows) (*models.Grant, error) {
	g := &models.Grant{}
	var expiry sql.NullTime
	if err := rows.Scan(&g.ID, &g.UserUID, &g.CourseID, &g.AccessType,
		&expiry, &g.IsActive, &g.CreatedAt); err != nil {
		return nil, err
	}
	if expiry.Valid {
		g.ExpiryDate = &expiry.Time
	}
	return g, nil
}
