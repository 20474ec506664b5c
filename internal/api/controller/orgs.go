package controller

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/crimewatch/backend/internal/domain"
	"github.com/crimewatch/backend/internal/pkg/constants"
)

func setSessionCookie(ctx echo.Context, session *domain.Session) {
	ctx.SetCookie(&http.Cookie{
		Name:     constants.CookieKeySessionToken,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(ctx echo.Context) {
	ctx.SetCookie(&http.Cookie{
		Name:     constants.CookieKeySessionToken,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
}

func (c *Controller) RegisterOrg(ctx echo.Context) error {
	req := new(domain.RegisterOrgRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}
	if err := ctx.Validate(req); err != nil {
		return err
	}

	org, err := c.authService.RegisterOrg(ctx.Request().Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, org)
}

func (c *Controller) LoginOrg(ctx echo.Context) error {
	req := new(domain.LoginOrgRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}
	if err := ctx.Validate(req); err != nil {
		return err
	}

	org, session, err := c.authService.LoginOrg(ctx.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return err
	}

	setSessionCookie(ctx, session)

	return ctx.JSON(http.StatusOK, org)
}

func (c *Controller) LogoutOrg(ctx echo.Context) error {
	if cookie, err := ctx.Cookie(constants.CookieKeySessionToken); err == nil {
		if err := c.authService.Logout(ctx.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}
	clearSessionCookie(ctx)

	return ctx.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

func (c *Controller) GetOrgReports(ctx echo.Context) error {
	views, err := c.reportsService.OrgReports(
		ctx.Request().Context(),
		ctx.QueryParams().Get("type"),
		ctx.QueryParams().Get("date_from"),
		ctx.QueryParams().Get("date_to"),
	)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, views)
}
