package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// ConfigHandler exposes the triage config singleton.
type ConfigHandler struct {
	service *service.ConfigService
}

// NewConfigHandler constructs handler.
func NewConfigHandler(configService *service.ConfigService) *ConfigHandler {
	return &ConfigHandler{service: configService}
}

// GetConfig GET /config. Always returns a value; defaults apply when nothing
// has been persisted.
func (h *ConfigHandler) GetConfig(c *fiber.Ctx) error {
	cfg, err := h.service.Get(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": configResponse(cfg)})
}

// UpdateConfig PUT /config (admin only, enforced by route middleware).
func (h *ConfigHandler) UpdateConfig(c *fiber.Ctx) error {
	var req dto.UpdateConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	cfg, err := h.service.Update(c.Context(), service.ConfigUpdateInput{
		AutoCloseEnabled:    req.AutoCloseEnabled,
		ConfidenceThreshold: req.ConfidenceThreshold,
		SLAHours:            req.SLAHours,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": configResponse(cfg)})
}

func configResponse(cfg domain.TriageConfig) dto.ConfigResponse {
	return dto.ConfigResponse{
		AutoCloseEnabled:    cfg.AutoCloseEnabled,
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		SLAHours:            cfg.SLAHours,
	}
}
