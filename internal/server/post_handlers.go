package server

import (
	"strings"
	"time"

	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	viewerID, _ := s.optionalUserID(c)

	posts, err := s.postService.ListPosts(c.Context(), service.FeedAll, viewerID, c.Query("search"), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"posts":  posts,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// GetMyPosts handles GET /api/posts/my
func (s *Server) GetMyPosts(c *fiber.Ctx) error {
	return s.listForViewer(c, service.FeedMine)
}

// GetFeed handles GET /api/posts/feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	return s.listForViewer(c, service.FeedFollowed)
}

// GetLikedPosts handles GET /api/posts/liked
func (s *Server) GetLikedPosts(c *fiber.Ctx) error {
	return s.listForViewer(c, service.FeedLiked)
}

func (s *Server) listForViewer(c *fiber.Ctx, kind service.FeedKind) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 20)

	posts, err := s.postService.ListPosts(c.Context(), kind, userID, c.Query("search"), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"posts":  posts,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	post, err := s.postService.GetPost(c.Context(), id, viewerID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts. A request carrying a future
// publish_time is accepted with 202 and published later by the worker.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string     `json:"title"`
		Content     string     `json:"content"`
		ImageURL    string     `json:"image_url"`
		Tags        string     `json:"tags"`
		PublishTime *time.Time `json:"publish_time"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, scheduled, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:      userID,
		Title:       req.Title,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		Tags:        strings.Fields(req.Tags),
		PublishTime: req.PublishTime,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if scheduled {
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"status":       "scheduled",
			"publish_time": req.PublishTime,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title    string  `json:"title"`
		Content  string  `json:"content"`
		ImageURL string  `json:"image_url"`
		Tags     *string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// An absent tags field keeps the current set; a present one replaces it,
	// even when empty.
	var tags *[]string
	if req.Tags != nil {
		split := strings.Fields(*req.Tags)
		tags = &split
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		PostID:   id,
		UserID:   userID,
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		Tags:     tags,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), id, userID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike handles POST /api/posts/:id/like. Liking answers 201, unliking
// answers 200.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, err := s.postService.ToggleLike(c.Context(), id, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if liked {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "liked"})
	}
	return c.JSON(fiber.Map{"status": "unliked"})
}
