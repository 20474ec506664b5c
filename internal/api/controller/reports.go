package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crimewatch/backend/internal/domain"
	"github.com/crimewatch/backend/internal/pkg/constants"
)

func (c *Controller) CreateReport(ctx echo.Context) error {
	req := new(domain.CreateReportRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}
	if err := ctx.Validate(req); err != nil {
		return err
	}

	report, err := c.reportsService.CreateReport(ctx.Request().Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, report)
}

func (c *Controller) AddReportAddon(ctx echo.Context) error {
	reportID, err := paramID(ctx)
	if err != nil {
		return err
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return constants.ErrUnsupportedMedia
	}

	src, err := fileHeader.Open()
	if err != nil {
		return constants.ErrUnsupportedMedia
	}
	defer src.Close()

	addon, err := c.reportsService.AddAddon(
		ctx.Request().Context(),
		reportID,
		fileHeader.Filename,
		fileHeader.Header.Get(echo.HeaderContentType),
		src,
	)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, addon)
}

func (c *Controller) GetReportAddons(ctx echo.Context) error {
	reportID, err := paramID(ctx)
	if err != nil {
		return err
	}

	addons, err := c.reportsService.ListReportAddons(ctx.Request().Context(), reportID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, addons)
}

func (c *Controller) DeleteReport(ctx echo.Context) error {
	reportID, err := paramID(ctx)
	if err != nil {
		return err
	}

	if err := c.reportsService.DeleteReport(ctx.Request().Context(), reportID); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, map[string]string{"message": "report deleted"})
}
