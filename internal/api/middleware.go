package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"

	"github.com/crimewatch/backend/internal/domain"
	"github.com/crimewatch/backend/internal/pkg/constants"
	"github.com/crimewatch/backend/internal/pkg/utils"
)

// SessionMiddleware requires a live session of the given user type,
// identified by the session cookie. The session only identifies a
// role; no finer-grained policy lives here.
func (svc *APIService) SessionMiddleware(userType string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			cookie, err := ctx.Cookie(constants.CookieKeySessionToken)
			if err != nil {
				return constants.ErrMissingAuthCookie
			}

			session, err := svc.authService.GetSession(ctx.Request().Context(), cookie.Value)
			if err != nil {
				return err
			}
			if session.UserType != userType {
				return constants.ErrUnauthorized
			}

			ctx.Set(constants.CtxKeyUserID, session.UserID)
			ctx.Set(constants.CtxKeyUserType, session.UserType)

			return next(ctx)
		}
	}
}

// AdminMiddleware guards the management API with a signed admin token
// whose embedded secret must match config.
func (svc *APIService) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		tokenStr := ctx.Request().Header.Get(constants.HeaderAdminToken)
		if tokenStr == "" {
			return constants.ErrUnauthorized
		}

		token, err := utils.ParseAuthToken(tokenStr)
		if err != nil {
			return err
		}

		if token.Secret != viper.GetString(constants.ViperSecretKey) || token.UserType != domain.UserTypeAdmin {
			return constants.ErrUnauthorized
		}

		ctx.Set(constants.CtxKeyUserID, token.UserID)
		ctx.Set(constants.CtxKeyUserType, domain.UserTypeAdmin)

		return next(ctx)
	}
}

// requestIDToContext copies echo's request id into the request context
// so the logger can pick it up.
func requestIDToContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		rid := ctx.Response().Header().Get(echo.HeaderXRequestID)
		if rid != "" {
			req := ctx.Request()
			ctx.SetRequest(req.WithContext(context.WithValue(req.Context(), constants.CtxKeyRequestID, rid)))
		}
		return next(ctx)
	}
}
