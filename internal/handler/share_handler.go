package handler

import (
	"bytes"
	"embed"
	"html/template"

	"codezetta/internal/domain"
	"codezetta/internal/dto"
	"codezetta/internal/logger"
	"codezetta/internal/service"
	"codezetta/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var shareTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type sharePage struct {
	*dto.SharedAttemptView
	HomeURL string
}

// ShareHandler serves share links and the public result page.
type ShareHandler struct {
	shareService    service.ShareService
	validator       *validation.Validator
	frontendBaseURL string
}

func NewShareHandler(shareService service.ShareService, validator *validation.Validator, frontendBaseURL string) *ShareHandler {
	return &ShareHandler{
		shareService:    shareService,
		validator:       validator,
		frontendBaseURL: frontendBaseURL,
	}
}

// CreateShareLink godoc
// @Summary Create a share link
// @Description Returns the public URL of an attempt, creating its slug on first use.
// @Tags share
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateShareLinkRequest true "Attempt"
// @Success 200 {object} dto.ShareLinkResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /share/quiz-attempt [post]
func (h *ShareHandler) CreateShareLink(c *fiber.Ctx) error {
	var req dto.CreateShareLinkRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	link, err := h.shareService.CreateShareLink(c.UserContext(), req.AttemptID)
	if err != nil {
		return err
	}
	return c.JSON(link)
}

// SharePage godoc
// @Summary Public result page
// @Description HTML page with Open Graph and Twitter card tags for link previews.
// @Tags share
// @Produce html
// @Param slug path string true "Share slug"
// @Success 200 {string} string "HTML page"
// @Failure 404 {string} string "HTML page"
// @Router /share/attempt/{slug} [get]
func (h *ShareHandler) SharePage(c *fiber.Ctx) error {
	view, err := h.shareService.GetAttemptBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		if !domain.IsErrorCode(err, domain.ErrNotFound) {
			logger.Get().Error("Failed to load shared attempt", zap.String("slug", c.Params("slug")), zap.Error(err))
		}
		return h.render(c, fiber.StatusNotFound, "share_not_found.html", nil)
	}
	return h.render(c, fiber.StatusOK, "share_attempt.html", sharePage{SharedAttemptView: view, HomeURL: h.frontendBaseURL})
}

// PostToLinkedIn godoc
// @Summary Post a result to LinkedIn
// @Tags share
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.LinkedInPostRequest true "Attempt"
// @Failure 400 {object} middleware.ErrorResponse "Not available"
// @Failure 404 {object} middleware.ErrorResponse
// @Router /social/linkedin/post [post]
func (h *ShareHandler) PostToLinkedIn(c *fiber.Ctx) error {
	var req dto.LinkedInPostRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	if err := h.shareService.PostToLinkedIn(c.UserContext(), req.AttemptID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Posted to LinkedIn"})
}

func (h *ShareHandler) render(c *fiber.Ctx, status int, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := shareTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return domain.NewInternalError("Failed to render page", err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
