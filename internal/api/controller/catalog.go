package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (c *Controller) GetCrimeTypes(ctx echo.Context) error {
	crimeTypes, err := c.store.ListCrimeTypes(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, crimeTypes)
}

func (c *Controller) GetLocations(ctx echo.Context) error {
	locations, err := c.store.ListLocations(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, locations)
}
