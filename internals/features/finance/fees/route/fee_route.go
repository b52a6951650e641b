// internals/features/finance/fees/route/fee_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feeController "sekolahku_backend/internals/features/finance/fees/controller"
)

func FeeRoutes(api fiber.Router, db *gorm.DB) {
	ctl := &feeController.FeeReportController{DB: db}

	fees := api.Group("/fees")
	fees.Get("/payments-info", ctl.GetPaymentsInfo)
	fees.Get("/overdue", ctl.GetOverdueFees)
}
