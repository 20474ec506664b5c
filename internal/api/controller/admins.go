package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crimewatch/backend/internal/domain"
	"github.com/crimewatch/backend/internal/pkg/utils"
)

func (c *Controller) LoginAdmin(ctx echo.Context) error {
	req := new(domain.LoginAdminRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}
	if err := ctx.Validate(req); err != nil {
		return err
	}

	admin, session, err := c.authService.LoginAdmin(ctx.Request().Context(), req.AdminID, req.Password)
	if err != nil {
		return err
	}

	authToken, err := utils.GenerateAuthToken(&utils.AuthTokenWrapper{
		UserID:   admin.AdminID,
		UserType: domain.UserTypeAdmin,
	})
	if err != nil {
		return err
	}

	setSessionCookie(ctx, session)

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"admin":      admin,
		"auth_token": authToken,
	})
}

func (c *Controller) ListAdmins(ctx echo.Context) error {
	admins, err := c.store.ListAdmins(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, admins)
}

func (c *Controller) AddAdmin(ctx echo.Context) error {
	req := new(domain.AddAdminRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}
	if err := ctx.Validate(req); err != nil {
		return err
	}

	admin, err := c.authService.AddAdmin(ctx.Request().Context(), req.Password)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, admin)
}

func (c *Controller) DeleteAdmin(ctx echo.Context) error {
	adminID, err := paramID(ctx)
	if err != nil {
		return err
	}

	if err := c.store.DeleteAdmin(ctx.Request().Context(), adminID); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, map[string]string{"message": "admin deleted"})
}

func (c *Controller) ListReporters(ctx echo.Context) error {
	reporters, err := c.store.ListReporters(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, reporters)
}

// AdminDeleteReporter is the management variant; it skips the
// confirm=true opt-in the self-service delete requires.
func (c *Controller) AdminDeleteReporter(ctx echo.Context) error {
	reporterID, err := paramID(ctx)
	if err != nil {
		return err
	}

	if err := c.authService.DeleteReporter(ctx.Request().Context(), reporterID); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, map[string]string{"message": "reporter deleted"})
}

func (c *Controller) ListOrgs(ctx echo.Context) error {
	orgs, err := c.store.ListOrgs(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, orgs)
}

func (c *Controller) DeleteOrg(ctx echo.Context) error {
	orgID, err := paramID(ctx)
	if err != nil {
		return err
	}

	if err := c.store.DeleteOrg(ctx.Request().Context(), orgID); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, map[string]string{"message": "organization deleted"})
}
