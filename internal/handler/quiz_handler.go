package handler

import (
	"codezetta/internal/domain"
	"codezetta/internal/dto"
	"codezetta/internal/service"
	"codezetta/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	quizService    service.QuizService
	attemptService service.AttemptService
	sessionService service.SessionService
	validator      *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(
	quizService service.QuizService,
	attemptService service.AttemptService,
	sessionService service.SessionService,
	validator *validation.Validator,
) *QuizHandler {
	return &QuizHandler{
		quizService:    quizService,
		attemptService: attemptService,
		sessionService: sessionService,
		validator:      validator,
	}
}

// List godoc
// @Summary List quizzes
// @Description Returns the catalog newest first, flagging quizzes the caller has already taken.
// @Tags quizzes
// @Security ApiKeyAuth
// @Produce json
// @Param subjectId query string false "Subject ID"
// @Param level query string false "beginner, middle or intermediate"
// @Success 200 {array} dto.QuizListItem
// @Failure 400 {object} middleware.ErrorResponse
// @Router /quizzes [get]
func (h *QuizHandler) List(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	filter := domain.QuizFilter{SubjectID: c.Query("subjectId")}
	if raw := c.Query("level"); raw != "" {
		level, ok := domain.ParseQuizLevel(raw)
		if !ok {
			return domain.NewBadRequestError("Invalid quiz level")
		}
		filter.Level = level
	}
	quizzes, err := h.quizService.List(c.UserContext(), filter, userID)
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}

// Get godoc
// @Summary Get a quiz
// @Description Returns the quiz with its questions; correct answers are not included.
// @Tags quizzes
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizDetailResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) Get(c *fiber.Ctx) error {
	quiz, err := h.quizService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// Create godoc
// @Summary Create a quiz
// @Tags quizzes
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateQuizRequest true "Quiz with questions"
// @Success 201 {object} dto.QuizDetailResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse "Subject not found"
// @Router /quizzes [post]
func (h *QuizHandler) Create(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req dto.CreateQuizRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	quiz, err := h.quizService.Create(c.UserContext(), &req, userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

// Update godoc
// @Summary Update a quiz
// @Description Questions, when present, replace the existing set.
// @Tags quizzes
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param body body dto.UpdateQuizRequest true "Fields to change"
// @Success 200 {object} dto.QuizDetailResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [put]
func (h *QuizHandler) Update(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req dto.UpdateQuizRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	quiz, err := h.quizService.Update(c.UserContext(), c.Params("id"), &req, userID)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// Delete godoc
// @Summary Delete a quiz
// @Tags quizzes
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.DeleteQuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [delete]
func (h *QuizHandler) Delete(c *fiber.Ctx) error {
	resp, err := h.quizService.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Submit godoc
// @Summary Submit answers
// @Description Grades the answers, records the attempt and awards 10 points per correct answer.
// @Tags quizzes
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param body body dto.SubmitQuizRequest true "Answers"
// @Success 200 {object} dto.SubmitQuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/submit [post]
func (h *QuizHandler) Submit(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req dto.SubmitQuizRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.attemptService.Submit(c.UserContext(), c.Params("id"), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// LevelCompletion godoc
// @Summary Level completion
// @Description Reports whether the caller has taken every quiz of a level.
// @Tags quizzes
// @Security ApiKeyAuth
// @Produce json
// @Param level path string true "beginner, middle or intermediate"
// @Success 200 {object} dto.LevelCompletionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /quizzes/level/{level}/completion [get]
func (h *QuizHandler) LevelCompletion(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	resp, err := h.attemptService.CheckLevelCompletion(c.UserContext(), c.Params("level"), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GenerateRandomQuestions godoc
// @Summary Generate practice questions
// @Description Only available once every quiz of the level has been taken.
// @Tags quizzes
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.GenerateRandomQuestionsRequest true "Level and count"
// @Success 200 {object} dto.GenerateRandomQuestionsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /quizzes/generate-random-questions [post]
func (h *QuizHandler) GenerateRandomQuestions(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req dto.GenerateRandomQuestionsRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.attemptService.GenerateRandomQuestions(c.UserContext(), &req, userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// MyAttempts godoc
// @Summary My attempts
// @Tags quizzes
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.AttemptListItem
// @Router /quizzes/attempts/my [get]
func (h *QuizHandler) MyAttempts(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	attempts, err := h.attemptService.ListMine(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(attempts)
}

// AttemptDetail godoc
// @Summary Attempt review
// @Description Returns an attempt of the caller with the answer key and the chosen options.
// @Tags quizzes
// @Security ApiKeyAuth
// @Produce json
// @Param attemptId path string true "Attempt ID"
// @Success 200 {object} dto.AttemptDetailResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/attempts/{attemptId} [get]
// @Router /attempts/{attemptId} [get]
func (h *QuizHandler) AttemptDetail(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	detail, err := h.attemptService.GetDetail(c.UserContext(), c.Params("attemptId"), userID)
	if err != nil {
		return err
	}
	return c.JSON(detail)
}

// StartSession godoc
// @Summary Start a quiz session
// @Description Abandons any other active session of the caller.
// @Tags quizzes
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 201 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/sessions [post]
func (h *QuizHandler) StartSession(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	session, err := h.sessionService.Start(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// Heartbeat godoc
// @Summary Keep a quiz session alive
// @Tags quizzes
// @Security ApiKeyAuth
// @Param sessionId path string true "Session ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/sessions/{sessionId}/heartbeat [post]
func (h *QuizHandler) Heartbeat(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	if err := h.sessionService.Heartbeat(c.UserContext(), userID, c.Params("sessionId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
