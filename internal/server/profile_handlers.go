package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfiles handles GET /api/profiles
func (s *Server) GetProfiles(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	search := c.Query("search")

	profiles, err := s.profileService.ListProfiles(c.Context(), search, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"profiles": profiles,
		"limit":    p.Limit,
		"offset":   p.Offset,
	})
}

// GetMyProfile handles GET /api/profiles/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := s.profileService.GetOwnProfile(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(profile)
}

// UpdateMyProfile handles PUT /api/profiles/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Username string `json:"username"`
		Bio      string `json:"bio"`
		ImageURL string `json:"image_url"`
		Privacy  string `json:"privacy"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   userID,
		Username: req.Username,
		Bio:      req.Bio,
		ImageURL: req.ImageURL,
		Privacy:  req.Privacy,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(profile)
}

// DeleteMyProfile handles DELETE /api/profiles/me
func (s *Server) DeleteMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.profileService.DeleteOwnProfile(c.Context(), userID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetProfile handles GET /api/profiles/:id
func (s *Server) GetProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.GetProfile(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(profile)
}

// UpdateProfile handles PUT /api/profiles/:id
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Username string `json:"username"`
		Bio      string `json:"bio"`
		ImageURL string `json:"image_url"`
		Privacy  string `json:"privacy"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpdateProfileByID(c.Context(), id, service.UpdateProfileInput{
		UserID:   userID,
		Username: req.Username,
		Bio:      req.Bio,
		ImageURL: req.ImageURL,
		Privacy:  req.Privacy,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(profile)
}

// DeleteProfile handles DELETE /api/profiles/:id
func (s *Server) DeleteProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.profileService.DeleteProfileByID(c.Context(), userID, id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetFollowers handles GET /api/profiles/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	profiles, err := s.profileService.Followers(c.Context(), id, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"profiles": profiles,
		"limit":    p.Limit,
		"offset":   p.Offset,
	})
}

// GetFollowings handles GET /api/profiles/:id/followings
func (s *Server) GetFollowings(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	profiles, err := s.profileService.Followings(c.Context(), id, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"profiles": profiles,
		"limit":    p.Limit,
		"offset":   p.Offset,
	})
}

// ToggleFollow handles POST /api/profiles/:id/follow. Following answers 201,
// unfollowing answers 200, so a client can tell which way the toggle went.
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	followed, err := s.profileService.ToggleFollow(c.Context(), userID, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if followed {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "followed"})
	}
	return c.JSON(fiber.Map{"status": "unfollowed"})
}
