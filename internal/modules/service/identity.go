package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/modules/model"
	"github.com/taskboard/taskboard/internal/modules/repo"
	"github.com/taskboard/taskboard/internal/pkg/errs"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

type IdentityService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, u *model.User, in UpdateProfileInput) (*model.User, error)
	EnsureRoot(ctx context.Context, email, username, password string) error
}

type identityService struct {
	r   repo.UserRepo
	log *zap.Logger
	now model.Clock
}

func NewIdentityService(r repo.UserRepo, log *zap.Logger, now model.Clock) IdentityService {
	return &identityService{r: r, log: log, now: now}
}

type RegisterInput struct {
	Email    string
	Username string
	Password string
}

type UpdateProfileInput struct {
	Email    *string
	Username *string
}

func cleanIdentity(email, username string) (string, string, error) {
	email = model.NormalizeEmail(email)
	username = strings.TrimSpace(username)
	if email == "" || !strings.Contains(email, "@") {
		return "", "", errs.Invalid("a valid email is required")
	}
	if username == "" {
		return "", "", errs.Invalid("username is required")
	}
	if utf8.RuneCountInString(username) > 150 {
		return "", "", errs.Invalid("username must be at most 150 characters")
	}
	return email, username, nil
}

func (s *identityService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email, username, err := cleanIdentity(in.Email, in.Username)
	if err != nil {
		return nil, err
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		SystemRole:   model.RoleNone,
		IsActive:     true,
	}
	if err := s.r.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Sugar().Infow("user registered", "user_id", u.ID)
	return u, nil
}

// Authenticate never tells unknown, inactive and wrong-password apart.
func (s *identityService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.r.GetByEmail(ctx, model.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, errs.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errs.ErrInvalidCredentials
	}

	at := s.now()
	if err := s.r.TouchLastLogin(ctx, u.ID, at); err != nil {
		return nil, err
	}
	u.LastLogin = &at
	return u, nil
}

func (s *identityService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if id == uuid.Nil {
		return nil, errs.ErrNotFound
	}
	return s.r.GetByID(ctx, id)
}

func (s *identityService) UpdateProfile(ctx context.Context, u *model.User, in UpdateProfileInput) (*model.User, error) {
	if err := ownerOf(u); err != nil {
		return nil, err
	}
	email, username := u.Email, u.Username
	if in.Email != nil {
		email = *in.Email
	}
	if in.Username != nil {
		username = *in.Username
	}
	email, username, err := cleanIdentity(email, username)
	if err != nil {
		return nil, err
	}

	next := *u
	next.Email, next.Username = email, username
	next.Touch(u.ID)
	if err := s.r.Update(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// EnsureRoot creates the root account once. An existing account with the same
// email is promoted instead of being replaced.
func (s *identityService) EnsureRoot(ctx context.Context, email, username, password string) error {
	email = model.NormalizeEmail(email)
	if email == "" {
		return nil
	}

	u, err := s.r.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if u.SystemRole == model.RoleRoot && u.IsSuperuser {
			return nil
		}
		u.SystemRole, u.IsStaff, u.IsSuperuser = model.RoleRoot, true, true
		u.Touch(u.ID)
		return s.r.Update(ctx, u)
	case !errors.Is(err, errs.ErrNotFound):
		return err
	}

	if username == "" {
		username = "root"
	}
	email, username, err = cleanIdentity(email, username)
	if err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	root := &model.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		SystemRole:   model.RoleRoot,
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
	}
	if err := s.r.Create(ctx, root); err != nil {
		return err
	}
	s.log.Sugar().Infow("root account created", "user_id", root.ID, "email", email)
	return nil
}

func hashPassword(password string) (string, error) {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "", errs.Invalid("password must be at least %d characters", minPasswordLen)
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", errs.Invalid("password is too long")
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}
