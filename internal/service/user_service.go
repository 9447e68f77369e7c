package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"farmatrack/internal/domain"
	"farmatrack/internal/logger"
	"farmatrack/internal/repository"
)

// UserInput поля учётной записи. Пустой Password при обновлении оставляет старый.
type UserInput struct {
	Name            string
	Email           string
	Password        string
	Role            string
	Territory       string
	Phone           string
	Status          string
	AssignedManager string
}

func (in UserInput) apply(u *domain.User) {
	u.Name = in.Name
	u.Email = in.Email
	u.Role = in.Role
	u.Territory = in.Territory
	u.Phone = in.Phone
	u.Status = in.Status
	u.AssignedManager = in.AssignedManager
	if u.Role == "" {
		u.Role = domain.UserRoleMR
	}
	if u.Status == "" {
		u.Status = domain.UserStatusActive
	}
}

var errEmailTaken = invalid("Email already exists")

type UserService struct {
	crud crud[domain.User]
	repo repository.UserRepository
	now  func() time.Time
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{
		crud: crud[domain.User]{repo: repo, entity: "User", order: domain.UsersByID},
		repo: repo,
		now:  time.Now,
	}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.crud.list(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.crud.get(ctx, id)
}

func (s *UserService) Create(ctx context.Context, in UserInput) (*domain.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Password == "" {
		return nil, invalid("Password is required")
	}
	exists, err := s.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, errEmailTaken
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	var u domain.User
	in.apply(&u)
	u.PasswordHash = hash
	created, err := s.crud.create(ctx, &u)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, errEmailTaken
	}
	if err != nil {
		return nil, err
	}
	logger.Info("user.created", "id", created.ID, "role", created.Role)
	return created, nil
}

func (s *UserService) Update(ctx context.Context, id int64, in UserInput) (*domain.User, error) {
	if id <= 0 {
		return nil, errIDRequired
	}
	in.Email = strings.TrimSpace(in.Email)
	owner, err := s.repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil && owner.ID != id:
		return nil, errEmailTaken
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("check email: %w", err)
	}
	var hash string
	if in.Password != "" {
		if hash, err = hashPassword(in.Password); err != nil {
			return nil, err
		}
	}
	updated, err := s.crud.update(ctx, id, func(u *domain.User) {
		in.apply(u)
		if hash != "" {
			u.PasswordHash = hash
		}
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, errEmailTaken
	}
	return updated, err
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.crud.delete(ctx, id)
}

// FindByEmail поиск без учёта регистра
func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("User not found")
	}
	return u, err
}

// ExistsByEmail проверка без учёта регистра
func (s *UserService) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.repo.ExistsByEmail(ctx, email)
}

// Authenticate проверяет пароль и отмечает время входа
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, unauthorized("Invalid email or password")
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, unauthorized("Invalid email or password")
	}
	now := s.now().UTC()
	u.LastLogin = &now
	if err := s.repo.Update(ctx, u); err != nil {
		logger.Warn("user.last_login.update_failed", "id", u.ID, "err", err)
	}
	return u, nil
}

func hashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}
