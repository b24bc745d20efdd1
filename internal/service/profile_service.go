package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/validation"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
	followRepo  repository.FollowRepository
}

// UpdateProfileInput carries profile changes. Empty fields are left untouched.
type UpdateProfileInput struct {
	UserID   uint
	Username string
	Bio      string
	ImageURL string
	Privacy  string
}

func NewProfileService(profileRepo repository.ProfileRepository, followRepo repository.FollowRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, followRepo: followRepo}
}

func (s *ProfileService) GetProfile(ctx context.Context, id uint) (*models.Profile, error) {
	return s.profileRepo.GetByID(ctx, id)
}

func (s *ProfileService) GetOwnProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *ProfileService) ListProfiles(ctx context.Context, search string, limit, offset int) ([]*models.Profile, error) {
	return s.profileRepo.List(ctx, search, limit, offset)
}

func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		profile.Username = in.Username
	}
	if in.Bio != "" {
		if len(in.Bio) > 500 {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		profile.Bio = in.Bio
	}
	if in.ImageURL != "" {
		profile.ImageURL = in.ImageURL
	}
	if in.Privacy != "" {
		privacy := models.ProfilePrivacy(in.Privacy)
		if privacy != models.PrivacyPublic && privacy != models.PrivacyPrivate {
			return nil, models.NewValidationError("Privacy must be public or private")
		}
		profile.Privacy = privacy
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// resolveOwned returns the caller's profile when it matches profileID. A
// missing target stays a 404; an existing foreign target is a 403.
func (s *ProfileService) resolveOwned(ctx context.Context, userID, profileID uint) (*models.Profile, error) {
	own, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if own.ID != profileID {
		if _, err := s.profileRepo.GetByID(ctx, profileID); err != nil {
			return nil, err
		}
		return nil, models.NewForbiddenError("You can only modify your own profile")
	}
	return own, nil
}

// UpdateProfileByID applies UpdateProfile semantics to an addressed profile,
// rejecting non-owners.
func (s *ProfileService) UpdateProfileByID(ctx context.Context, profileID uint, in UpdateProfileInput) (*models.Profile, error) {
	if _, err := s.resolveOwned(ctx, in.UserID, profileID); err != nil {
		return nil, err
	}
	return s.UpdateProfile(ctx, in)
}

// DeleteProfileByID deletes an addressed profile, rejecting non-owners.
func (s *ProfileService) DeleteProfileByID(ctx context.Context, userID, profileID uint) error {
	if _, err := s.resolveOwned(ctx, userID, profileID); err != nil {
		return err
	}
	return s.profileRepo.Delete(ctx, profileID)
}

// DeleteOwnProfile removes the caller's profile and everything hanging off
// it. The account itself survives.
func (s *ProfileService) DeleteOwnProfile(ctx context.Context, userID uint) error {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.profileRepo.Delete(ctx, profile.ID)
}

// ToggleFollow flips the caller's follow edge towards the target profile and
// reports whether the caller now follows it.
func (s *ProfileService) ToggleFollow(ctx context.Context, userID, targetID uint) (bool, error) {
	follower, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	if follower.ID == targetID {
		return false, models.NewValidationError("You cannot follow yourself")
	}
	// Resolve the target first so a missing profile is a 404, not a
	// foreign key failure.
	if _, err := s.profileRepo.GetByID(ctx, targetID); err != nil {
		return false, err
	}
	return s.followRepo.Toggle(ctx, follower.ID, targetID)
}

func (s *ProfileService) Followers(ctx context.Context, profileID uint, limit, offset int) ([]*models.Profile, error) {
	if _, err := s.profileRepo.GetByID(ctx, profileID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, profileID, limit, offset)
}

func (s *ProfileService) Followings(ctx context.Context, profileID uint, limit, offset int) ([]*models.Profile, error) {
	if _, err := s.profileRepo.GetByID(ctx, profileID); err != nil {
		return nil, err
	}
	return s.followRepo.Followings(ctx, profileID, limit, offset)
}
