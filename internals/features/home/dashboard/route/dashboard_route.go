// internals/features/home/dashboard/route/dashboard_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dashboardController "sekolahku_backend/internals/features/home/dashboard/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

func DashboardRoutes(api fiber.Router, db *gorm.DB) {
	ctl := &dashboardController.DashboardController{DB: db}

	api.Get("/dashboard", authMiddleware.OnlyAdmin(), ctl.GetDashboard)
}
