// Package services contains server-side business logic: administrator
// authentication, the content collections, the home page and upload
// presigning.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/dmitrijs2005/labsite/internal/common"
	"github.com/dmitrijs2005/labsite/internal/cryptox"
	"github.com/dmitrijs2005/labsite/internal/server/auth"
	"github.com/dmitrijs2005/labsite/internal/server/models"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// MinPasswordLength applies to accounts created by the bootstrap tool.
const MinPasswordLength = 8

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LoginResult is returned on successful login.
type LoginResult struct {
	Token   string
	Account *models.Account
}

// AccountService handles administrator login, token resolution and account
// creation.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenService
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenService) *AccountService {
	return &AccountService{db: db, repomanager: m, tokens: tokens}
}

// Login checks the credentials and issues a token. Unknown emails and wrong
// passwords both yield common.ErrInvalidCredentials and cost one bcrypt
// comparison each.
func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, common.NewValidationError(MsgCredentialsMissing)
	}

	repo := s.repomanager.Admins(s.db)
	account, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = cryptox.BurnVerify(password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	if err := cryptox.VerifyPassword(account.PasswordHash, password); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	account.PasswordHash = ""
	return &LoginResult{Token: token, Account: account}, nil
}

// Authenticate resolves a bearer token to the account it was issued for.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*models.Account, error) {
	identity, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, identity.AccountID)
}

// GetByID loads an account without its password hash.
func (s *AccountService) GetByID(ctx context.Context, id string) (*models.Account, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrAccountNotFound
	}

	account, err := s.repomanager.Admins(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return account, nil
}

// CreateAdmin validates and stores a new administrator. It is only reachable
// from the bootstrap tool.
func (s *AccountService) CreateAdmin(ctx context.Context, name, email, password string) (*models.Account, error) {
	if err := ValidateNewAdmin(name, email, password, password); err != nil {
		return nil, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		Email:        models.NormalizeEmail(email),
		Name:         name,
		PasswordHash: hash,
	}

	created, err := s.repomanager.Admins(s.db).Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("create account: %w", err)
	}
	return created, nil
}

// CountAdmins reports how many administrator accounts exist.
func (s *AccountService) CountAdmins(ctx context.Context) (int64, error) {
	return s.repomanager.Admins(s.db).Count(ctx)
}

// ValidateNewAdmin checks bootstrap input before anything touches the store.
func ValidateNewAdmin(name, email, password, confirm string) error {
	switch {
	case name == "" || email == "" || password == "":
		return common.NewValidationError("All fields are required")
	case password != confirm:
		return common.NewValidationError("Passwords do not match")
	case len(password) < MinPasswordLength:
		return common.NewValidationError(fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength))
	case !emailShape.MatchString(email):
		return common.NewValidationError("Invalid email format")
	}
	return nil
}
