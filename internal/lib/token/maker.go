// Package token реализует выпуск и проверку короткоживущих токенов
// на скачивание. Токен привязывает пользователя к конкретному курсу
// и действует считанные минуты: право на скачивание проверяется
// сервером в момент выпуска, а сам токен лишь переносит результат
// этой проверки до обработчика отдачи файла.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DownloadClaims описывает данные, хранящиеся в токене скачивания.
type DownloadClaims struct {
	UserUID              string `json:"user_uid"`  // Идентификатор пользователя
	CourseID             int    `json:"course_id"` // Курс, который разрешено скачать
	jwt.RegisteredClaims        // Встроенные стандартные claims (ExpiresAt, IssuedAt и пр.)
}

// Maker описывает интерфейс выпуска и разбора токенов скачивания.
type Maker interface {
	// GenerateToken выпускает токен на скачивание курса courseID пользователем userUID.
	GenerateToken(userUID string, courseID int) (string, error)
	// ParseToken проверяет подпись и срок токена, возвращая его claims.
	ParseToken(tokenStr string) (*DownloadClaims, error)
}

// MakerImpl реализует Maker на HMAC-подписи с секретным ключом
// и фиксированным временем жизни токена.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewMaker создаёт MakerImpl с заданным секретом и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

// GenerateToken создает подписанный токен скачивания.
func (m *MakerImpl) GenerateToken(userUID string, courseID int) (string, error) {
	claims := DownloadClaims{
		UserUID:  userUID,
		CourseID: courseID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.tokenTTL)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(m.secretKey))
}

// ParseToken парсит токен, проверяет его подпись и срок действия,
// возвращает DownloadClaims, если токен корректен.
func (m *MakerImpl) ParseToken(tokenStr string) (*DownloadClaims, error) {
	const op = "token.ParseToken"
	tok, err := jwt.ParseWithClaims(tokenStr, &DownloadClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(m.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := tok.Claims.(*DownloadClaims)
	if !ok || !tok.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
