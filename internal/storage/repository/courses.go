package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/edushield/edushield/internal/models"
)

// CreateCourse вставляет новый курс вместе с его политикой доступа
// и возвращает его ID.
func (s *Storage) CreateCourse(ctx context.Context, course models.Course) (int, error) {
	const op = "storage.CreateCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO courses (title, description, body, access_level,
			      allow_download, allow_screenshot, allow_copy, allow_print,
			      watermark_text, protection_level)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		course.Title, course.Description, course.Body, course.AccessLevel,
		course.AllowDownload, course.AllowScreenshot, course.AllowCopy, course.AllowPrint,
		course.WatermarkText, course.ProtectionLevel).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetCourse возвращает курс по его ID, включая закрытое тело.
// Решение, можно ли отдавать тело наружу, принимает вызывающий слой.
func (s *Storage) GetCourse(ctx context.Context, id int) (*models.Course, error) {
	const op = "storage.GetCourse"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, body, access_level,
			      allow_download, allow_screenshot, allow_copy, allow_print,
			      watermark_text, protection_level, created_at
			  FROM courses
			  WHERE id = $1`
	c := &models.Course{}
	var watermark sql.NullString
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Body, &c.AccessLevel,
		&c.AllowDownload, &c.AllowScreenshot, &c.AllowCopy, &c.AllowPrint,
		&watermark, &c.ProtectionLevel, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if watermark.Valid {
		c.WatermarkText = &watermark.String
	}
	return c, nil
}

// ListCourses возвращает облегченные представления всех курсов.
// Тело курса в выборку не попадает.
func (s *Storage) ListCourses(ctx context.Context) ([]models.CourseSummary, error) {
	const op = "storage.ListCourses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, access_level
			  FROM courses
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.CourseSummary
	for rows.Next() {
		var c models.CourseSummary
		if err = rows.Scan(&c.ID, &c.Title, &c.Description, &c.AccessLevel); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateCoursePolicy обновляет политику доступа и защиты курса.
func (s *Storage) UpdateCoursePolicy(ctx context.Context, id int, course models.Course) error {
	const op = "storage.UpdateCoursePolicy"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE courses
			  SET access_level = $1,
			      allow_download = $2,
			      allow_screenshot = $3,
			      allow_copy = $4,
			      allow_print = $5,
			      watermark_text = $6,
			      protection_level = $7
			  WHERE id = $8`
	result, err := s.DB.ExecContext(ctx, query,
		course.AccessLevel, course.AllowDownload, course.AllowScreenshot,
		course.AllowCopy, course.AllowPrint, course.WatermarkText,
		course.ProtectionLevel, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
