package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bifroggame1-create/FastPayAI/internal/domain"
	"github.com/bifroggame1-create/FastPayAI/internal/repository"
	"github.com/rs/zerolog"
)

// Referral economics: the referee starts with a welcome bonus, the referrer
// is credited for each user who signs up with their code.
const (
	refereeWelcomeBonus = 100
	referrerBonus       = 200
)

type RegisterUserRequest struct {
	ID         string
	Name       string
	Username   string
	Avatar     string
	ReferredBy string
}

type UserService struct {
	repo   repository.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo repository.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger.With().Str("component", "users").Logger(),
	}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Register creates the user on first contact and returns the existing record
// on repeat calls. Frontend calls this on every Mini-App launch.
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*domain.User, error) {
	existing, err := s.repo.GetByID(ctx, req.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = "User"
	}

	user := &domain.User{
		ID:           req.ID,
		Name:         name,
		Username:     req.Username,
		Avatar:       req.Avatar,
		JoinedAt:     time.Now(),
		ReferralCode: referralCodeFor(req.ID),
		ReferredBy:   req.ReferredBy,
	}
	if req.ReferredBy != "" {
		user.BonusBalance = refereeWelcomeBonus
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// Two first-launch calls can race past the lookup; the unique index
		// picks one winner and the loser returns the winner's record.
		if errors.Is(err, repository.ErrUserExists) {
			return s.repo.GetByID(ctx, req.ID)
		}
		return nil, err
	}

	if req.ReferredBy != "" {
		if err := s.repo.AccrueReferralBonus(ctx, req.ReferredBy, referrerBonus); err != nil {
			// The new user is already saved, losing a referral credit is not
			// worth failing the registration over.
			s.logger.Error().Err(err).Str("referralCode", req.ReferredBy).Msg("failed to accrue referral bonus")
		}
	}

	return user, nil
}

func referralCodeFor(userID string) string {
	suffix := userID
	if len(suffix) > 6 {
		suffix = suffix[:6]
	}
	return fmt.Sprintf("FASTPAY%s", suffix)
}
