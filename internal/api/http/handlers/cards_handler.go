package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sevenboard/board-api/internal/api/dto"
	"github.com/sevenboard/board-api/internal/service"
	"github.com/sevenboard/board-api/internal/storage"
	apperrors "github.com/sevenboard/board-api/pkg/util"
)

// CardsHandler manages solicitation endpoints.
type CardsHandler struct {
	service *service.SolicitationService
	uploads *storage.UploadStore
	logger  *zap.Logger
}

// NewCardsHandler constructs handler.
func NewCardsHandler(solService *service.SolicitationService, uploads *storage.UploadStore, logger *zap.Logger) *CardsHandler {
	return &CardsHandler{service: solService, uploads: uploads, logger: logger}
}

// GetCards GET /api/cards.
func (h *CardsHandler) GetCards(c *fiber.Ctx) error {
	sols, err := h.service.ListAll(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CardResponse, 0, len(sols))
	for i := range sols {
		items = append(items, dto.FromSolicitation(&sols[i]))
	}
	return c.JSON(items)
}

// CreateCard POST /api/cards (multipart form).
func (h *CardsHandler) CreateCard(c *fiber.Ctx) error {
	input := service.CreateInput{
		Department:  c.FormValue("departamento"),
		Email:       c.FormValue("email"),
		RequestType: c.FormValue("tipoSolicitacao"),
		Description: c.FormValue("descricao"),
		Channels:    parseVeiculacao(c.FormValue("veiculacao")),
		DueDate:     c.FormValue("dataEntrega"),
		DueTime:     c.FormValue("horarioEntrega"),
		Notes:       c.FormValue("observacoes"),
	}

	if file, err := c.FormFile("arquivo"); err == nil && file != nil {
		url, err := h.uploads.Save(file)
		if err != nil {
			h.logger.Warn("attachment save failed", zap.String("filename", file.Filename), zap.Error(err))
			return apperrors.NewValidationError("could not store attachment", nil)
		}
		input.AttachmentURL = url
	}

	sol, err := h.service.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromSolicitation(sol))
}

// UpdateStatus PUT /api/cards/:id/status.
func (h *CardsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}
	sol, err := h.service.ChangeStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromSolicitation(sol))
}

// Timeline GET /api/cards/:id/timeline.
func (h *CardsHandler) Timeline(c *fiber.Ctx) error {
	entries, err := h.service.Timeline(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.TimelineEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.FromTimelineEntry(entry))
	}
	return c.JSON(items)
}

// Events GET /api/cards/:id/events.
func (h *CardsHandler) Events(c *fiber.Ctx) error {
	evs, err := h.service.Events(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.TicketEventResponse, 0, len(evs))
	for _, event := range evs {
		items = append(items, dto.FromTicketEvent(event))
	}
	return c.JSON(items)
}

// parseVeiculacao accepts either a JSON array or a bare channel name,
// matching what the intake form has historically posted.
func parseVeiculacao(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var channels []string
		if err := json.Unmarshal([]byte(raw), &channels); err == nil {
			return channels
		}
		return nil
	}
	return []string{raw}
}
