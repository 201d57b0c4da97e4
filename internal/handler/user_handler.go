package handler

import (
	"strconv"

	"codezetta/internal/domain"
	"codezetta/internal/dto"
	"codezetta/internal/service"
	"codezetta/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
	validator   *validation.Validator
}

func NewUserHandler(userService service.UserService, validator *validation.Validator) *UserHandler {
	return &UserHandler{userService: userService, validator: validator}
}

// GetMe retrieves the profile of the currently authenticated user.
// @Summary Get my profile
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /users/me [get]
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	user, err := h.userService.GetMe(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// UpdateMe patches name, avatar, bio and preferences.
// @Summary Update my profile
// @Tags users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.UpdateMeRequest true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /users/me [patch]
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req dto.UpdateMeRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	user, err := h.userService.UpdateMe(c.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// UpdatePassword changes the password of a local account.
// @Summary Change password
// @Tags users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.UpdatePasswordRequest true "Current and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ErrorResponse "Wrong current password or social-only account"
// @Router /users/me/password [patch]
// @Router /users/me/password [put]
func (h *UserHandler) UpdatePassword(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req dto.UpdatePasswordRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.userService.UpdatePassword(c.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetStats returns quiz totals, the daily streak and per-subject figures.
// @Summary My statistics
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserStatsResponse
// @Router /users/me/stats [get]
func (h *UserHandler) GetStats(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	stats, err := h.userService.GetStats(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// GetProfileStats returns the dashboard view with achievements.
// @Summary My dashboard statistics
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ProfileStatsResponse
// @Router /users/me/profile-stats [get]
func (h *UserHandler) GetProfileStats(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	stats, err := h.userService.GetProfileStats(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// GetPoints returns the caller's point total.
// @Summary My points
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.PointsResponse
// @Router /users/me/points [get]
func (h *UserHandler) GetPoints(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	points, err := h.userService.GetPoints(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(points)
}

// GetProfile returns the user together with every attempt.
// @Summary My profile with attempts
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ProfileWithAttemptsResponse
// @Router /users/me/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	profile, err := h.userService.GetProfileWithAttempts(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// UpdateProfile changes name and email.
// @Summary Update name and email
// @Tags users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.UpdateProfileRequest true "Name and email"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} middleware.ErrorResponse "Email already in use"
// @Router /users/me/profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req dto.UpdateProfileRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	user, err := h.userService.UpdateProfile(c.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// UpdateSelectedSubjects replaces the subjects the user follows.
// @Summary Update followed subjects
// @Tags users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.UpdateSelectedSubjectsRequest true "Subject names"
// @Success 200 {object} dto.UserResponse
// @Router /users/me/subjects [put]
func (h *UserHandler) UpdateSelectedSubjects(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req dto.UpdateSelectedSubjectsRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	user, err := h.userService.UpdateSelectedSubjects(c.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// GetLeaderboardPosition returns the caller's rank.
// @Summary My leaderboard position
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.LeaderboardPositionResponse
// @Router /users/me/leaderboard-position [get]
func (h *UserHandler) GetLeaderboardPosition(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	pos, err := h.userService.GetLeaderboardPosition(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(pos)
}

// GetAttempts lists the caller's attempts, newest first.
// @Summary My attempts
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.AttemptListItem
// @Router /users/me/attempts [get]
func (h *UserHandler) GetAttempts(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	attempts, err := h.userService.GetAttempts(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(attempts)
}

// SyncPoints recomputes the point total from stored attempts.
// @Summary Recalculate my points
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.SyncPointsResponse
// @Router /users/me/sync-points [post]
func (h *UserHandler) SyncPoints(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	resp, err := h.userService.SyncPoints(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetByID returns another user's public record.
// @Summary Get user by id
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	user, err := h.userService.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// GetLeaderboard lists the top users by points.
// @Summary Leaderboard
// @Tags leaderboard
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Number of entries (default 20, max 100)"
// @Success 200 {array} dto.LeaderboardEntry
// @Failure 400 {object} middleware.ErrorResponse "limit is not a number"
// @Router /leaderboard [get]
func (h *UserHandler) GetLeaderboard(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.NewBadRequestError("limit must be an integer")
		}
		limit = n
	}
	entries, err := h.userService.GetLeaderboard(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(entries)
}
