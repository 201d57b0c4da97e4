package handler

import (
	"codezetta/internal/dto"
	"codezetta/internal/service"
	"codezetta/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SubjectHandler serves the subject catalog.
type SubjectHandler struct {
	subjectService service.SubjectService
	validator      *validation.Validator
}

func NewSubjectHandler(subjectService service.SubjectService, validator *validation.Validator) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService, validator: validator}
}

// List godoc
// @Summary List subjects
// @Description Returns every subject ordered by name. Missing built-in subjects are created on first use.
// @Tags subjects
// @Produce json
// @Success 200 {array} dto.SubjectResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /subjects [get]
func (h *SubjectHandler) List(c *fiber.Ctx) error {
	subjects, err := h.subjectService.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(subjects)
}

// Get godoc
// @Summary Get a subject
// @Tags subjects
// @Produce json
// @Param id path string true "Subject ID"
// @Success 200 {object} dto.SubjectResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /subjects/{id} [get]
func (h *SubjectHandler) Get(c *fiber.Ctx) error {
	subject, err := h.subjectService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(subject)
}

// Create godoc
// @Summary Create a subject
// @Tags subjects
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateSubjectRequest true "Subject"
// @Success 201 {object} dto.SubjectResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /subjects [post]
func (h *SubjectHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSubjectRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	subject, err := h.subjectService.Create(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(subject)
}
