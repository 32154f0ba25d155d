// Package content собирает представления курсов для зрителя: решает
// через Access Evaluator, что можно отдать, и прикладывает директивы
// защиты. Контент, на который нет прав, не покидает сервер — клиентские
// блокировки лишь оформляют уже принятое здесь решение.
package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/edushield/edushield/internal/lib/token"
	"github.com/edushield/edushield/internal/metrics"
	"github.com/edushield/edushield/internal/models"
	"github.com/edushield/edushield/internal/services/protection"
)

// ErrForbidden возвращается, когда операция запрещена для текущего зрителя.
var ErrForbidden = errors.New("forbidden")

// CourseRepository описывает контракт хранилища курсов.
type CourseRepository interface {
	GetCourse(ctx context.Context, id int) (*models.Course, error)
	ListCourses(ctx context.Context) ([]models.CourseSummary, error)
	CreateCourse(ctx context.Context, course models.Course) (int, error)
	UpdateCoursePolicy(ctx context.Context, id int, course models.Course) error
}

// UserSource описывает чтение актуальной записи пользователя.
// Для авторизации используется живая строка базы, а не снимок сессии:
// сессия лишь подтверждает личность, права считаются по свежим данным.
type UserSource interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// AccessEvaluator описывает контракт проверки прав.
type AccessEvaluator interface {
	CanAccess(ctx context.Context, user *models.User, course *models.Course) (bool, error)
	CanDownload(ctx context.Context, user *models.User, course *models.Course) (bool, error)
}

// ContentService отвечает за выдачу курсов с учетом прав зрителя.
type ContentService struct {
	courses   CourseRepository
	users     UserSource
	evaluator AccessEvaluator
	tokens    token.Maker
}

// NewContentService создает новый экземпляр ContentService.
func NewContentService(courses CourseRepository, users UserSource, evaluator AccessEvaluator, tokens token.Maker) *ContentService {
	return &ContentService{
		courses:   courses,
		users:     users,
		evaluator: evaluator,
		tokens:    tokens,
	}
}

// List возвращает витрину курсов. Доступна всем, включая анонимов:
// в ней нет закрытого контента.
func (s *ContentService) List(ctx context.Context) ([]models.CourseSummary, error) {
	const op = "content.List"

	list, err := s.courses.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// View строит представление курса для зрителя. viewer == nil — аноним.
// Без права доступа возвращается заблокированное представление без тела
// курса с причиной: login_required для анонима, upgrade_required для
// вошедшего. С правом доступа — полное тело, эффективный флаг
// скачивания и директивы защиты.
func (s *ContentService) View(ctx context.Context, viewer *models.Identity, courseID int) (*models.CourseView, error) {
	const op = "content.View"

	course, err := s.courses.GetCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.resolveUser(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	canAccess, err := s.evaluator.CanAccess(ctx, user, course)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	view := &models.CourseView{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		AccessLevel: course.AccessLevel,
	}

	if !canAccess {
		metrics.AccessDecisions.WithLabelValues(course.AccessLevel, "denied").Inc()
		view.Locked = true
		if user == nil {
			view.Reason = models.ReasonLoginRequired
		} else {
			view.Reason = models.ReasonUpgradeRequired
		}
		return view, nil
	}
	metrics.AccessDecisions.WithLabelValues(course.AccessLevel, "allowed").Inc()

	canDownload, err := s.evaluator.CanDownload(ctx, user, course)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	view.Body = course.Body
	view.AllowDownload = course.AllowDownload && canDownload
	view.Protection = protection.Directives(course)
	return view, nil
}

// IssueDownloadToken выпускает короткоживущий токен на скачивание курса.
// Требует права скачивания и разрешенного политикой курса скачивания.
func (s *ContentService) IssueDownloadToken(ctx context.Context, viewer *models.Identity, courseID int) (string, error) {
	const op = "content.IssueDownloadToken"

	if viewer == nil {
		return "", ErrForbidden
	}

	course, err := s.courses.GetCourse(ctx, courseID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.GetUser(ctx, viewer.UID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	canDownload, err := s.evaluator.CanDownload(ctx, user, course)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !canDownload || (!course.AllowDownload && !user.IsAdmin()) {
		return "", ErrForbidden
	}

	tok, err := s.tokens.GenerateToken(user.UID, course.ID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	metrics.DownloadTokensIssued.Inc()
	return tok, nil
}

// Create добавляет новый курс (администраторская операция).
func (s *ContentService) Create(ctx context.Context, course models.Course) (int, error) {
	const op = "content.Create"

	id, err := s.courses.CreateCourse(ctx, course)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// UpdatePolicy обновляет политику доступа и защиты курса
// (администраторская операция).
func (s *ContentService) UpdatePolicy(ctx context.Context, id int, course models.Course) error {
	const op = "content.UpdatePolicy"

	if err := s.courses.UpdateCoursePolicy(ctx, id, course); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *ContentService) resolveUser(ctx context.Context, viewer *models.Identity) (*models.User, error) {
	if viewer == nil {
		return nil, nil
	}
	return s.users.GetUser(ctx, viewer.UID)
}
