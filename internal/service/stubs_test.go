package service

import (
	"context"
	"time"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	registerFn   func(context.Context, *models.User, *models.Profile) error
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	updateFn     func(context.Context, *models.User) error
	deleteFn     func(context.Context, uint) error
}

func (s *userRepoStub) Register(ctx context.Context, u *models.User, p *models.Profile) error {
	return s.registerFn(ctx, u, p)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error { return s.updateFn(ctx, u) }
func (s *userRepoStub) Delete(ctx context.Context, id uint) error        { return s.deleteFn(ctx, id) }

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		registerFn:   func(_ context.Context, _ *models.User, _ *models.Profile) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

// profileRepoStub is a stub for repository.ProfileRepository.
type profileRepoStub struct {
	getByIDFn     func(context.Context, uint) (*models.Profile, error)
	getByUserIDFn func(context.Context, uint) (*models.Profile, error)
	listFn        func(context.Context, string, int, int) ([]*models.Profile, error)
	updateFn      func(context.Context, *models.Profile) error
	deleteFn      func(context.Context, uint) error
}

func (s *profileRepoStub) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	return s.getByIDFn(ctx, id)
}
func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) List(ctx context.Context, search string, limit, offset int) ([]*models.Profile, error) {
	return s.listFn(ctx, search, limit, offset)
}
func (s *profileRepoStub) Update(ctx context.Context, p *models.Profile) error {
	return s.updateFn(ctx, p)
}
func (s *profileRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Profile, error) {
			return &models.Profile{ID: id}, nil
		},
		getByUserIDFn: func(_ context.Context, userID uint) (*models.Profile, error) {
			// profile ID offset from user ID so mixups show up in tests
			return &models.Profile{ID: userID + 100, UserID: userID}, nil
		},
		listFn:   func(_ context.Context, _ string, _, _ int) ([]*models.Profile, error) { return nil, nil },
		updateFn: func(_ context.Context, _ *models.Profile) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn     func(context.Context, *models.Post, []models.Tag) error
	getByIDFn    func(context.Context, uint, uint) (*models.Post, error)
	listFn       func(context.Context, repository.PostFilter) ([]*models.Post, error)
	updateFn     func(context.Context, *models.Post, []models.Tag) error
	deleteFn     func(context.Context, uint) error
	toggleLikeFn func(context.Context, uint, uint) (bool, error)
}

func (s *postRepoStub) Create(ctx context.Context, p *models.Post, tags []models.Tag) error {
	return s.createFn(ctx, p, tags)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *postRepoStub) List(ctx context.Context, f repository.PostFilter) ([]*models.Post, error) {
	return s.listFn(ctx, f)
}
func (s *postRepoStub) Update(ctx context.Context, p *models.Post, tags []models.Tag) error {
	return s.updateFn(ctx, p, tags)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *postRepoStub) ToggleLike(ctx context.Context, postID, profileID uint) (bool, error) {
	return s.toggleLikeFn(ctx, postID, profileID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post, _ []models.Tag) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		listFn:       func(_ context.Context, _ repository.PostFilter) ([]*models.Post, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.Post, _ []models.Tag) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		toggleLikeFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
	}
}

// tagRepoStub is a stub for repository.TagRepository.
type tagRepoStub struct {
	findOrCreateFn func(context.Context, []string) ([]models.Tag, error)
}

func (s *tagRepoStub) FindOrCreate(ctx context.Context, names []string) ([]models.Tag, error) {
	return s.findOrCreateFn(ctx, names)
}

func noopTagRepo() *tagRepoStub {
	return &tagRepoStub{
		findOrCreateFn: func(_ context.Context, names []string) ([]models.Tag, error) {
			tags := make([]models.Tag, 0, len(names))
			for i, name := range names {
				tags = append(tags, models.Tag{ID: uint(i + 1), Name: name})
			}
			return tags, nil
		},
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Commentary) error
	listByPostFn func(context.Context, uint, int, int) ([]*models.Commentary, error)
	deleteOwnFn  func(context.Context, uint, uint, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Commentary) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Commentary, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) DeleteOwned(ctx context.Context, commentID, postID, authorID uint) error {
	return s.deleteOwnFn(ctx, commentID, postID, authorID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Commentary) error { return nil },
		listByPostFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Commentary, error) { return nil, nil },
		deleteOwnFn:  func(_ context.Context, _, _, _ uint) error { return nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	toggleFn     func(context.Context, uint, uint) (bool, error)
	followersFn  func(context.Context, uint, int, int) ([]*models.Profile, error)
	followingsFn func(context.Context, uint, int, int) ([]*models.Profile, error)
}

func (s *followRepoStub) Toggle(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.toggleFn(ctx, followerID, followingID)
}
func (s *followRepoStub) Followers(ctx context.Context, profileID uint, limit, offset int) ([]*models.Profile, error) {
	return s.followersFn(ctx, profileID, limit, offset)
}
func (s *followRepoStub) Followings(ctx context.Context, profileID uint, limit, offset int) ([]*models.Profile, error) {
	return s.followingsFn(ctx, profileID, limit, offset)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		toggleFn:     func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		followersFn:  func(_ context.Context, _ uint, _, _ int) ([]*models.Profile, error) { return nil, nil },
		followingsFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Profile, error) { return nil, nil },
	}
}

// schedulerStub records scheduled inputs.
type schedulerStub struct {
	scheduled []CreatePostInput
	at        []time.Time
	err       error
}

func (s *schedulerStub) Schedule(_ context.Context, in CreatePostInput, at time.Time) error {
	if s.err != nil {
		return s.err
	}
	s.scheduled = append(s.scheduled, in)
	s.at = append(s.at, at)
	return nil
}
