package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"profilehub/internal/cache"
	"profilehub/internal/model"
	"profilehub/internal/repository"
)

const (
	profileCacheTTL     = 5 * time.Minute
	profileListCacheKey = "profiles:all"
)

var (
	// ErrProfileNotFound is returned when no profile exists for a user.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrUserNotRegistered is returned when an upsert names a user that does
	// not exist, which can happen with a token issued for a deleted account.
	ErrUserNotRegistered = errors.New("user not registered")
	// ErrUsernameTaken is returned when another user already holds the username.
	ErrUsernameTaken = errors.New("username already taken")
)

// ProfileService exposes profile domain operations.
type ProfileService interface {
	Upsert(ctx context.Context, userID uuid.UUID, firstName, lastName, username string) (*model.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	List(ctx context.Context) ([]model.Profile, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type profileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	cache       *cache.Client
}

// NewProfileService builds a ProfileService with repositories and cache.
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository, cache *cache.Client) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		cache:       cache,
	}
}

func (s *profileService) cacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("profile:%s", userID)
}

// Upsert creates the user's profile on first call and updates the mutable
// fields on subsequent calls. The user reference is never altered. Username
// uniqueness is enforced by the storage layer's unique index; the read before
// the write is not the correctness boundary.
func (s *profileService) Upsert(ctx context.Context, userID uuid.UUID, firstName, lastName, username string) (*model.Profile, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotRegistered
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		profile.FirstName = firstName
		profile.LastName = lastName
		profile.Username = username
		if err := s.profileRepo.Update(ctx, profile); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrUsernameTaken
			}
			return nil, fmt.Errorf("update profile: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = &model.Profile{
			ID:        uuid.New(),
			UserID:    userID,
			FirstName: firstName,
			LastName:  lastName,
			Username:  username,
		}
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrUsernameTaken
			}
			return nil, fmt.Errorf("create profile: %w", err)
		}
	default:
		return nil, fmt.Errorf("find profile: %w", err)
	}

	s.invalidate(ctx, userID)
	return profile, nil
}

// GetByUserID returns the profile referencing the given user.
func (s *profileService) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(userID)); data != nil {
		var cached model.Profile
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}

	if payload, err := json.Marshal(profile); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(userID), payload, profileCacheTTL)
	}
	return profile, nil
}

// List returns every profile with its linked user preloaded.
func (s *profileService) List(ctx context.Context) ([]model.Profile, error) {
	if data, _ := s.cache.Get(ctx, profileListCacheKey); data != nil {
		var cached []model.Profile
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	if payload, err := json.Marshal(profiles); err == nil {
		_ = s.cache.Set(ctx, profileListCacheKey, payload, profileCacheTTL)
	}
	return profiles, nil
}

// Delete removes the user's profile and the user record in one transaction,
// so a failure never leaves an orphaned user behind.
func (s *profileService) Delete(ctx context.Context, userID uuid.UUID) error {
	err := s.profileRepo.WithTransaction(ctx, func(profiles repository.ProfileRepository, users repository.UserRepository) error {
		if err := profiles.DeleteByUserID(ctx, userID); err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		if err := users.Delete(ctx, userID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	return nil
}

func (s *profileService) invalidate(ctx context.Context, userID uuid.UUID) {
	_ = s.cache.Delete(ctx, s.cacheKey(userID), profileListCacheKey)
}
