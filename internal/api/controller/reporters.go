package controller

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/crimewatch/backend/internal/domain"
	"github.com/crimewatch/backend/internal/pkg/constants"
)

func paramID(ctx echo.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, constants.NewCodedError(http.StatusBadRequest, "id must be an integer")
	}
	return id, nil
}

func (c *Controller) RegisterReporter(ctx echo.Context) error {
	req := new(domain.RegisterReporterRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}
	if err := ctx.Validate(req); err != nil {
		return err
	}

	reporter, err := c.authService.RegisterReporter(ctx.Request().Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, reporter)
}

func (c *Controller) LoginReporter(ctx echo.Context) error {
	req := new(domain.LoginReporterRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}
	if err := ctx.Validate(req); err != nil {
		return err
	}

	reporter, err := c.authService.LoginReporter(ctx.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, reporter)
}

func (c *Controller) GetReporter(ctx echo.Context) error {
	reporterID, err := paramID(ctx)
	if err != nil {
		return err
	}

	reporter, err := c.authService.GetReporter(ctx.Request().Context(), reporterID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, reporter)
}

func (c *Controller) UpdateReporter(ctx echo.Context) error {
	reporterID, err := paramID(ctx)
	if err != nil {
		return err
	}

	req := new(domain.UpdateReporterRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}
	if err := ctx.Validate(req); err != nil {
		return err
	}

	reporter, err := c.authService.UpdateReporter(ctx.Request().Context(), reporterID, req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, reporter)
}

// DeleteReporter is irreversible, so the caller has to opt in
// explicitly with confirm=true.
func (c *Controller) DeleteReporter(ctx echo.Context) error {
	reporterID, err := paramID(ctx)
	if err != nil {
		return err
	}

	if ctx.QueryParams().Get("confirm") != "true" {
		return constants.ErrConfirmRequired
	}

	if err := c.authService.DeleteReporter(ctx.Request().Context(), reporterID); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, map[string]string{"message": "reporter deleted"})
}

func (c *Controller) GetReporterReports(ctx echo.Context) error {
	reporterID, err := paramID(ctx)
	if err != nil {
		return err
	}

	reports, err := c.reportsService.ListReporterReports(ctx.Request().Context(), reporterID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, reports)
}
