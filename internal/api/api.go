package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/crimewatch/backend/internal/api/controller"
	"github.com/crimewatch/backend/internal/domain"
	"github.com/crimewatch/backend/internal/pkg/constants"
	"github.com/crimewatch/backend/internal/pkg/logger"
	"github.com/crimewatch/backend/internal/pkg/store"
	"github.com/crimewatch/backend/internal/service/analytics"
	"github.com/crimewatch/backend/internal/service/auth"
	"github.com/crimewatch/backend/internal/service/reports"
)

type APIService struct {
	router           *echo.Echo
	analyticsService *analytics.Service
	reportsService   *reports.Service
	authService      *auth.Service
}

func (svc *APIService) Serve(addr string) {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(context.Background(), err)
	}
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(st store.Store) (*APIService, error) {
	svc := &APIService{router: echo.New()}

	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.RequestID())
	svc.router.Use(requestIDToContext)
	svc.router.Use(middleware.Logger())
	svc.router.Use(middleware.Recover())
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: viper.GetStringSlice(constants.ViperCORSOrigins),
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
		AllowHeaders: []string{"Content-Type", "Authorization", constants.HeaderAdminToken},
	}))

	svc.analyticsService = analytics.NewService(st)
	svc.reportsService = reports.NewReportsService(st, viper.GetString(constants.ViperUploadDir))
	svc.authService = auth.NewAuthService(st)

	cntrl := controller.NewController(svc.analyticsService, svc.reportsService, svc.authService, st)

	svc.router.GET("/health", cntrl.Health)

	loc := svc.router.Group("/analytics")
	loc.GET("/summary", cntrl.GetSummary)
	loc.GET("/risk-levels", cntrl.GetRiskLevels)
	loc.GET("/recent", cntrl.GetRecentReports)
	loc.GET("/", cntrl.GetAnalyticsBundle)

	api := svc.router.Group("/api")
	api.GET("/analytics/regions", cntrl.GetRegions)
	api.GET("/crime-types", cntrl.GetCrimeTypes)
	api.GET("/locations", cntrl.GetLocations)

	org := api.Group("/org")
	org.POST("/register", cntrl.RegisterOrg)
	org.POST("/login", cntrl.LoginOrg)
	org.GET("/logout", cntrl.LogoutOrg)
	org.GET("/analytics", cntrl.GetOrgAnalytics, svc.SessionMiddleware(domain.UserTypeOrg))
	org.GET("/reports", cntrl.GetOrgReports, svc.SessionMiddleware(domain.UserTypeOrg))

	reporters := api.Group("/reporters")
	reporters.POST("/register", cntrl.RegisterReporter)
	reporters.POST("/login", cntrl.LoginReporter)
	reporters.GET("/:id", cntrl.GetReporter)
	reporters.PUT("/:id/update", cntrl.UpdateReporter)
	reporters.DELETE("/:id", cntrl.DeleteReporter)
	reporters.GET("/:id/reports", cntrl.GetReporterReports)

	reportsGroup := api.Group("/reports")
	reportsGroup.POST("", cntrl.CreateReport)
	reportsGroup.POST("/:id/addons", cntrl.AddReportAddon)
	reportsGroup.GET("/:id/addons", cntrl.GetReportAddons)

	admin := api.Group("/admin")
	admin.POST("/login", cntrl.LoginAdmin)
	admin.GET("/organizations", cntrl.ListOrgs, svc.AdminMiddleware)
	admin.DELETE("/organizations/:id", cntrl.DeleteOrg, svc.AdminMiddleware)
	admin.GET("/reporters", cntrl.ListReporters, svc.AdminMiddleware)
	admin.DELETE("/reporters/:id", cntrl.AdminDeleteReporter, svc.AdminMiddleware)
	admin.GET("/admins/list", cntrl.ListAdmins, svc.AdminMiddleware)
	admin.POST("/admins/add", cntrl.AddAdmin, svc.AdminMiddleware)
	admin.DELETE("/admins/:id", cntrl.DeleteAdmin, svc.AdminMiddleware)
	admin.DELETE("/reports/:id", cntrl.DeleteReport, svc.AdminMiddleware)

	return svc, nil
}
