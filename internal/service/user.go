package service

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/model"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/repository"
)

type UserService struct {
	repo *repository.Repository
}

func NewUserService(repo *repository.Repository) *UserService {
	return &UserService{repo: repo}
}

// GetOrCreateUser resolves the authenticated identity to a local member
// row, creating it with a fresh referral code on first contact. Identity
// (id, name, email) comes from the session token; the identity provider
// owns it.
func (s *UserService) GetOrCreateUser(ctx context.Context, id uuid.UUID, displayName, email string) (*model.User, error) {
	existing, err := s.repo.GetUser(ctx, id)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	referralCode, err := generateReferralCode()
	if err != nil {
		return nil, err
	}

	if displayName == "" {
		displayName = model.DefaultDisplayName
	}

	user := &model.User{
		ID:           id,
		DisplayName:  displayName,
		ReferralCode: referralCode,
	}
	if email != "" {
		user.Email = &email
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.GetUser(ctx, id)
}

func generateReferralCode() (string, error) {
	bytes := make([]byte, 5)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	code := base32.StdEncoding.EncodeToString(bytes)
	code = strings.TrimRight(code, "=")
	return strings.ToLower(code[:8]), nil
}
