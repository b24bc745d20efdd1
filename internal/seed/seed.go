// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configuration for the seeder
type Options struct {
	NumUsers int
	NumPosts int
}

// DefaultPassword is the plaintext password every seeded account gets.
const DefaultPassword = "password123"

var tagPool = []string{
	"golang", "travel", "music", "food", "fitness", "photography", "books",
	"movies", "gaming", "art", "science", "startups", "coffee", "nature",
}

// Seeder populates the database with fake social data.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the given DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll wipes all seeded tables. Deleting users cascades through
// profiles, posts, likes, commentaries and follows.
func (s *Seeder) ClearAll() error {
	if err := s.db.Exec("DELETE FROM users").Error; err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	if err := s.db.Exec("DELETE FROM tags").Error; err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}
	return nil
}

// Seed creates a connected social mesh: users with profiles, a follow graph,
// tagged posts, likes and commentaries.
func (s *Seeder) Seed(opts Options) error {
	profiles, err := s.seedUsers(opts.NumUsers)
	if err != nil {
		return err
	}
	if err := s.seedFollows(profiles); err != nil {
		return err
	}
	posts, err := s.seedPosts(profiles, opts.NumPosts)
	if err != nil {
		return err
	}
	if err := s.seedLikesAndComments(profiles, posts); err != nil {
		return err
	}
	log.Printf("Seeded %d users, %d posts", len(profiles), len(posts))
	return nil
}

func (s *Seeder) seedUsers(n int) ([]*models.Profile, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	profiles := make([]*models.Profile, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Email:    fmt.Sprintf("%d_%s", i, gofakeit.Email()),
			Password: string(hashed),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("seed user: %w", err)
		}

		profile := &models.Profile{
			UserID:   user.ID,
			Username: fmt.Sprintf("%s_%d", gofakeit.Username(), i),
			Bio:      gofakeit.Sentence(8),
			ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/400/400", gofakeit.UUID()),
			Privacy:  models.PrivacyPublic,
		}
		if s.rng.Intn(10) == 0 {
			profile.Privacy = models.PrivacyPrivate
		}
		if err := s.db.Create(profile).Error; err != nil {
			return nil, fmt.Errorf("seed profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (s *Seeder) seedFollows(profiles []*models.Profile) error {
	for _, p := range profiles {
		for _, q := range profiles {
			if p.ID == q.ID || s.rng.Intn(5) != 0 {
				continue
			}
			edge := models.Follow{FollowerID: p.ID, FollowingID: q.ID}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
				return fmt.Errorf("seed follow: %w", err)
			}
		}
	}
	return nil
}

func (s *Seeder) seedPosts(profiles []*models.Profile, n int) ([]*models.Post, error) {
	if len(profiles) == 0 {
		return nil, nil
	}

	tags := make([]models.Tag, 0, len(tagPool))
	for _, name := range tagPool {
		tags = append(tags, models.Tag{Name: name})
	}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tags).Error; err != nil {
		return nil, fmt.Errorf("seed tags: %w", err)
	}
	if err := s.db.Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := profiles[s.rng.Intn(len(profiles))]
		post := &models.Post{
			Title:    gofakeit.Sentence(5),
			Content:  gofakeit.Paragraph(1, 3, 5, "\n"),
			ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
			AuthorID: author.ID,
			// spread creation times so feeds have a realistic order
			CreatedAt: time.Now().Add(-time.Duration(s.rng.Intn(90*24)) * time.Hour),
		}
		if err := s.db.Create(post).Error; err != nil {
			return nil, fmt.Errorf("seed post: %w", err)
		}
		start := s.rng.Intn(len(tags) - 1)
		picked := tags[start : start+1+s.rng.Intn(2)]
		if err := s.db.Model(post).Association("Tags").Replace(picked); err != nil {
			return nil, fmt.Errorf("seed post tags: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *Seeder) seedLikesAndComments(profiles []*models.Profile, posts []*models.Post) error {
	for _, post := range posts {
		for _, p := range profiles {
			if s.rng.Intn(4) == 0 {
				like := models.Like{PostID: post.ID, ProfileID: p.ID}
				if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
					return fmt.Errorf("seed like: %w", err)
				}
			}
			if s.rng.Intn(8) == 0 {
				comment := models.Commentary{
					PostID:   post.ID,
					AuthorID: p.ID,
					Content:  gofakeit.Sentence(10),
				}
				if err := s.db.Create(&comment).Error; err != nil {
					return fmt.Errorf("seed comment: %w", err)
				}
			}
		}
	}
	return nil
}
