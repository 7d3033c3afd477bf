package services

import (
	"errors"

	"tradepost/internal/auth"
	"tradepost/internal/domain"
	"tradepost/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds    = errors.New("invalid email or password")
	ErrEmailTaken  = errors.New("email already registered")
	ErrBadToken    = errors.New("invalid or expired token")
	ErrNoPrincipal = errors.New("principal no longer exists")
)

type AuthService struct {
	Accounts       *repos.AccountRepo
	JWTSecret      string
	OpeningBalance int64
}

// Register creates a principal with the configured opening balance and
// returns it.
func (s *AuthService) Register(email, name, password string) (*domain.Principal, error) {
	if existing, err := s.Accounts.ByEmail(email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	id := "p-" + uuid.NewString()
	if err := s.Accounts.Create(id, email, name, string(hash), s.OpeningBalance); err != nil {
		return nil, err
	}
	return s.Accounts.ByID(id)
}

// Login checks credentials and mints a bearer token for the principal.
func (s *AuthService) Login(email, password string) (string, *domain.Principal, error) {
	p, err := s.Accounts.ByEmail(email)
	if err != nil {
		return "", nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(password)) != nil {
		return "", nil, ErrBadCreds
	}
	token, err := auth.GenerateToken(s.JWTSecret, p.ID, p.Name)
	if err != nil {
		return "", nil, err
	}
	return token, p, nil
}

// Authenticate resolves a bearer token to the current principal record.
func (s *AuthService) Authenticate(token string) (*domain.Principal, error) {
	claims, err := auth.ValidateToken(s.JWTSecret, token)
	if err != nil {
		return nil, ErrBadToken
	}
	p, err := s.Accounts.ByID(claims.PrincipalID)
	if err != nil {
		return nil, ErrNoPrincipal
	}
	return p, nil
}
