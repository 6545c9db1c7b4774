package service

import (
	"context"
	"errors"
	"fmt"

	"todo_service/internal/models"
	"todo_service/internal/repository"
)

// Domain errors for account flows.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
)

// CreateUserParams is the registration input. Username may be empty.
type CreateUserParams struct {
	Email    string
	Username string
	Password string
}

// UserService handles account CRUD and credential checks.
type UserService struct {
	userRepo repository.Users
}

func NewUserService(userRepo repository.Users) *UserService {
	return &UserService{userRepo: userRepo}
}

// Create registers a new account. The password is hashed before it ever
// reaches storage; duplicate email/username surface as typed errors coming
// from the unique constraints, not from a pre-check.
func (s *UserService) Create(ctx context.Context, in CreateUserParams) (*models.User, error) {
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	id, err := s.userRepo.Create(ctx, in.Email, in.Username, hash, true)
	if err != nil {
		return nil, mapDuplicateErr(err)
	}

	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Get returns one account by id.
func (s *UserService) Get(ctx context.Context, id int) (*models.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Update applies a partial patch. A non-empty password field is re-hashed;
// an empty patch leaves the record untouched and returns it as-is.
func (s *UserService) Update(ctx context.Context, id int, p models.UserPatch) (*models.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Password != nil && *p.Password != "" {
		hash, hashErr := hashPassword(*p.Password)
		if hashErr != nil {
			return nil, hashErr
		}
		p.Password = &hash
	} else {
		// Blank or absent password never clears the stored hash.
		p.Password = nil
	}

	if p.IsEmpty() {
		return u, nil
	}

	if err := s.userRepo.Update(ctx, id, p); err != nil {
		return nil, mapDuplicateErr(err)
	}
	return s.Get(ctx, id)
}

// Delete removes the account and returns the prior record. Owned todos are
// removed by the schema-level cascade.
func (s *UserService) Delete(ctx context.Context, id int) (*models.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate looks an account up by email and checks the password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// mapDuplicateErr converts repository duplicate-key errors to service ones.
func mapDuplicateErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrEmailTaken
	case errors.Is(err, repository.ErrDuplicateUsername):
		return ErrUsernameTaken
	}
	return err
}
