package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/crimewatch/backend/internal/pkg/constants"
	"github.com/crimewatch/backend/internal/service/analytics"
)

func requireLocationID(ctx echo.Context) (int64, error) {
	raw := ctx.QueryParams().Get("location_id")
	if raw == "" {
		return 0, constants.NewCodedError(http.StatusBadRequest, "location_id is required")
	}
	locationID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, constants.NewCodedError(http.StatusBadRequest, "location_id must be an integer")
	}
	return locationID, nil
}

func optionalCrimeTypeID(ctx echo.Context) (*int64, error) {
	raw := ctx.QueryParams().Get("crime_type_id")
	if raw == "" {
		return nil, nil
	}
	crimeTypeID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, constants.NewCodedError(http.StatusBadRequest, "crime_type_id must be an integer")
	}
	return &crimeTypeID, nil
}

func (c *Controller) GetSummary(ctx echo.Context) error {
	locationID, err := requireLocationID(ctx)
	if err != nil {
		return err
	}
	crimeTypeID, err := optionalCrimeTypeID(ctx)
	if err != nil {
		return err
	}

	summaries, err := c.analyticsService.Summary(ctx.Request().Context(), locationID, crimeTypeID, ctx.QueryParams().Get("range"))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, summaries)
}

func (c *Controller) GetRiskLevels(ctx echo.Context) error {
	locationID, err := requireLocationID(ctx)
	if err != nil {
		return err
	}

	// All-time classification unless a window was asked for.
	var since *time.Time
	if rng := ctx.QueryParams().Get("range"); rng != "" {
		days, err := analytics.ParseWindowDays(rng)
		if err != nil {
			return err
		}
		cutoff := time.Now().UTC().AddDate(0, 0, -days)
		since = &cutoff
	}

	levels, err := c.analyticsService.RiskLevels(ctx.Request().Context(), locationID, since)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, levels)
}

func (c *Controller) GetRecentReports(ctx echo.Context) error {
	locationID, err := requireLocationID(ctx)
	if err != nil {
		return err
	}

	var limit uint64
	if raw := ctx.QueryParams().Get("limit"); raw != "" {
		limit, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return constants.NewCodedError(http.StatusBadRequest, "limit must be an integer")
		}
	}

	// The public recent listing carries full descriptions; only the
	// org report table clips them.
	views, err := c.analyticsService.RecentReports(ctx.Request().Context(), locationID, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, views)
}

func (c *Controller) GetAnalyticsBundle(ctx echo.Context) error {
	locationID, err := requireLocationID(ctx)
	if err != nil {
		return err
	}
	crimeTypeID, err := optionalCrimeTypeID(ctx)
	if err != nil {
		return err
	}

	bundle, err := c.analyticsService.Bundle(ctx.Request().Context(), locationID, crimeTypeID, ctx.QueryParams().Get("range"))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, bundle)
}

// windowDaysParam reads the trailing-window size from either a plain
// "days" integer or a "<N> days" range token. Zero means default.
func windowDaysParam(ctx echo.Context) (int, error) {
	if raw := ctx.QueryParams().Get("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return 0, constants.NewCodedError(http.StatusBadRequest, "days must be an integer")
		}
		return days, nil
	}
	if rng := ctx.QueryParams().Get("range"); rng != "" {
		return analytics.ParseWindowDays(rng)
	}
	return 0, nil
}

func (c *Controller) GetRegions(ctx echo.Context) error {
	days, err := windowDaysParam(ctx)
	if err != nil {
		return err
	}

	regions, err := c.analyticsService.Regions(ctx.Request().Context(), days)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, regions)
}

func (c *Controller) GetOrgAnalytics(ctx echo.Context) error {
	days, err := windowDaysParam(ctx)
	if err != nil {
		return err
	}

	out, err := c.analyticsService.OrgAnalytics(ctx.Request().Context(), days)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, out)
}
