package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crimewatch/backend/internal/pkg/store"
	"github.com/crimewatch/backend/internal/service/analytics"
	"github.com/crimewatch/backend/internal/service/auth"
	"github.com/crimewatch/backend/internal/service/reports"
)

type Controller struct {
	analyticsService *analytics.Service
	reportsService   *reports.Service
	authService      *auth.Service
	store            store.Store
}

func NewController(
	analyticsService *analytics.Service,
	reportsService *reports.Service,
	authService *auth.Service,
	st store.Store,
) *Controller {
	return &Controller{
		analyticsService: analyticsService,
		reportsService:   reportsService,
		authService:      authService,
		store:            st,
	}
}

func (c *Controller) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
