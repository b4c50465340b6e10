package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Роли субъектов токена
const (
	RoleUser  = "user"
	RoleGuest = "guest"
	RoleAdmin = "admin"
)

// Claims содержит данные субъекта, извлеченные из токена
type Claims struct {
	UserID string
	Role   string
}

// JWTService отвечает за создание и валидацию JWT токенов
type JWTService struct {
	secretKey string
}

// NewJWTService создаёт новый экземпляр JWTService
func NewJWTService(secretKey string) *JWTService {
	return &JWTService{secretKey: secretKey}
}

// GenerateToken создаёт JWT токен для субъекта с указанной ролью
func (s *JWTService) GenerateToken(userID string, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ExtractClaims проверяет токен и возвращает данные субъекта
func (s *JWTService) ExtractClaims(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return Claims{}, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Claims{}, fmt.Errorf("невалидный токен")
	}

	userID, _ := mapClaims["user_id"].(string)
	role, _ := mapClaims["role"].(string)
	if userID == "" || role == "" {
		return Claims{}, fmt.Errorf("токен без субъекта или роли")
	}

	return Claims{UserID: userID, Role: role}, nil
}
