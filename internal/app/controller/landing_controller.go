package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hjyoon/storefront-backend/internal/app/service"
	apperrors "github.com/hjyoon/storefront-backend/internal/errors"
	"github.com/hjyoon/storefront-backend/internal/middleware"
)

type LandingController struct {
	landingService service.LandingService
}

func NewLandingController(landingService service.LandingService) *LandingController {
	return &LandingController{
		landingService: landingService,
	}
}

// GetLanding returns the marketing page payload
// GET /api/v1/landing
func (ctrl *LandingController) GetLanding(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	content, err := ctrl.landingService.GetLanding()
	if err != nil {
		if errors.Is(err, service.ErrCatalogUnavailable) {
			log.Warn("Catalog not loaded yet", nil)
			apperrors.ServiceUnavailable(c, apperrors.CatalogUnavailable, "")
			return
		}
		log.Error("Failed to build landing content", err, nil)
		apperrors.InternalError(c, "Failed to fetch landing content")
		return
	}

	c.JSON(http.StatusOK, content)
}
