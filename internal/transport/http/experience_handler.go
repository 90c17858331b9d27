package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wanderhq/wanderlust/internal/service"
)

type ExperienceHandler struct {
	experiences *service.ExperienceService
}

func RegisterExperiences(e *echo.Echo, experiences *service.ExperienceService) {
	handler := &ExperienceHandler{experiences: experiences}
	e.GET("/experiences", handler.index)
}

func (h *ExperienceHandler) index(c echo.Context) error {
	all, err := h.experiences.List(c.Request().Context())
	if err != nil {
		return err
	}
	return renderPage(c, http.StatusOK, "experiences/index", "Experiences", all)
}
