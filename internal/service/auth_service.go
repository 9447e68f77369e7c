package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"farmatrack/internal/domain"
)

// Claims содержимое токена входа
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService выдаёт и проверяет HS256-токены для пользователей
type AuthService struct {
	users  *UserService
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(users *UserService, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	if u.Status != "" && u.Status != domain.UserStatusActive {
		return "", nil, unauthorized("Account is inactive")
	}
	now := s.now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Name: u.Name,
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *AuthService) ParseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, unauthorized("Invalid or expired token")
	}
	return claims, nil
}
