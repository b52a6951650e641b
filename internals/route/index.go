// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feeRoute "sekolahku_backend/internals/features/finance/fees/route"
	gatewayRoute "sekolahku_backend/internals/features/finance/gateway/route"
	dashboardRoute "sekolahku_backend/internals/features/home/dashboard/route"
	employeeRoute "sekolahku_backend/internals/features/people/employees/route"
	studentRoute "sekolahku_backend/internals/features/people/students/route"
	classroomRoute "sekolahku_backend/internals/features/school/classrooms/route"
	enrollmentRoute "sekolahku_backend/internals/features/school/enrollments/route"
	vehicleRoute "sekolahku_backend/internals/features/transport/vehicles/route"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	public := app.Group("/api")
	employeeRoute.AuthRoutes(public, db)

	// ===================== PROTECTED =====================
	// Semua route di bawah /api memakai JWT pegawai.
	// Webhook Midtrans (/api/payments/notification) dikecualikan di middleware.
	log.Println("[INFO] Setting up protected API group...")
	api := app.Group("/api", authMiddleware.AuthMiddleware(db))

	log.Println("[INFO] Setting up StudentRoutes...")
	studentRoute.StudentRoutes(api, db)

	log.Println("[INFO] Setting up EmployeeRoutes...")
	employeeRoute.EmployeeRoutes(api, db)

	log.Println("[INFO] Setting up ClassroomRoutes...")
	classroomRoute.ClassroomRoutes(api, db)

	log.Println("[INFO] Setting up EnrollmentRoutes...")
	enrollmentRoute.EnrollmentRoutes(api, db)

	log.Println("[INFO] Setting up FeeRoutes...")
	feeRoute.FeeRoutes(api, db)

	log.Println("[INFO] Setting up GatewayRoutes...")
	gatewayRoute.GatewayRoutes(api, db)

	log.Println("[INFO] Setting up VehicleRoutes...")
	vehicleRoute.VehicleRoutes(api, db)

	log.Println("[INFO] Setting up DashboardRoutes...")
	dashboardRoute.DashboardRoutes(api, db)
}
