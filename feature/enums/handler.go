package enums

import (
	"enum-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for enum synchronization.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the enum routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/enums")
	group.Get("/", h.HandleListDefinitions)
	group.Get("/status", h.HandleStatus)
	group.Post("/sync", h.HandleSync)
	group.Post("/plan", h.HandlePlan)
}

// HandleSync synchronizes every configured target.
// @Summary Synchronize Enums
// @Description Reconciles every configured database target against the enum definitions. Concurrent requests share one run.
// @Tags enums
// @Accept json
// @Produce json
// @Success 200 {object} RunStatus "Run Status"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /enums/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering enum synchronization")

	status, err := h.service.RunSync(c.Context())
	if err != nil {
		l.Error("Enum synchronization failed", zap.Error(err))
		if status != nil {
			// Partial outcome: some targets may have synchronized
			return c.Status(fiber.StatusInternalServerError).JSON(status)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(status)
}

// HandlePlan computes pending work without mutating any target.
// @Summary Plan Enum Synchronization
// @Description Computes the insert/update/delete sets for every target without applying them.
// @Tags enums
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Plans per target"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /enums/plan [post]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	plans, err := h.service.PlanAll(c.Context())
	if err != nil {
		l.Error("Enum planning failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"targets": plans,
	})
}

// HandleListDefinitions lists the resolved enum definitions.
// @Summary List Enum Definitions
// @Description Lists every resolved enum definition with its member count.
// @Tags enums
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Definitions"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /enums [get]
func (h *Handler) HandleListDefinitions(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	defs, err := h.service.ListDefinitions(c.Context())
	if err != nil {
		l.Error("Listing enum definitions failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"enums": defs,
	})
}

// HandleStatus returns the most recent synchronization run.
// @Summary Last Sync Status
// @Description Returns the status of the most recent synchronization run, if any.
// @Tags enums
// @Accept json
// @Produce json
// @Success 200 {object} RunStatus "Run Status"
// @Router /enums/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	status := h.service.LastRun()
	if status == nil {
		return c.JSON(fiber.Map{
			"status": "never synchronized",
		})
	}
	return c.JSON(status)
}
