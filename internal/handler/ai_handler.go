package handler

import (
	"codezetta/internal/dto"
	"codezetta/internal/service"
	"codezetta/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type AIHandler struct {
	aiQuizService service.AIQuizService
	validator     *validation.Validator
}

func NewAIHandler(aiQuizService service.AIQuizService, validator *validation.Validator) *AIHandler {
	return &AIHandler{aiQuizService: aiQuizService, validator: validator}
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Generates questions for a subject and level and stores them as a new quiz.
// @Tags ai
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.GenerateQuizRequest true "Subject, level and count"
// @Success 201 {object} dto.QuizDetailResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /ai/generate-quiz [post]
func (h *AIHandler) GenerateQuiz(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req dto.GenerateQuizRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	quiz, err := h.aiQuizService.GenerateQuiz(c.UserContext(), &req, userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}
