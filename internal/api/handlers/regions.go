package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/amaumene/dsnparr/internal/controllers"
	"github.com/amaumene/dsnparr/internal/models"
)

// RegionsHandler lists the region catalog of a site variant
type RegionsHandler struct {
	regions controllers.RegionSource
	logger  *logrus.Logger
}

// NewRegionsHandler creates a new regions handler
func NewRegionsHandler(regions controllers.RegionSource, logger *logrus.Logger) *RegionsHandler {
	return &RegionsHandler{
		regions: regions,
		logger:  logger,
	}
}

// RegionsResponse represents the regions response
type RegionsResponse struct {
	Variant models.SiteVariant `json:"variant"`
	Count   int                `json:"count"`
	Regions []string           `json:"regions"`
}

// List handles GET /api/regions
func (h *RegionsHandler) List(c *fiber.Ctx) error {
	variant, err := models.ParseSiteVariant(c.Query("variant"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	regions := h.regions.Regions(variant)
	return c.JSON(RegionsResponse{
		Variant: variant,
		Count:   len(regions),
		Regions: regions,
	})
}
