// internals/features/people/employees/route/employee_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	employeeController "sekolahku_backend/internals/features/people/employees/controller"
	"sekolahku_backend/internals/middlewares"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

// AuthRoutes: endpoint publik (tanpa JWT).
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	authCtl := &employeeController.AuthController{DB: db}
	api.Post("/auth/login", middlewares.LoginRateLimiter(), authCtl.Login)
}

// EmployeeRoutes mendaftarkan endpoint pegawai & kehadiran.
func EmployeeRoutes(api fiber.Router, db *gorm.DB) {
	ctl := &employeeController.EmployeeController{DB: db}
	attCtl := &employeeController.AttendanceController{DB: db}
	adminCtl := &employeeController.AdminController{DB: db}

	employees := api.Group("/employees")
	employees.Post("/", ctl.CreateEmployee)
	employees.Get("/", ctl.GetEmployees)
	employees.Get("/:id", ctl.GetEmployeeByID)
	employees.Patch("/:id", ctl.UpdateEmployee)
	employees.Delete("/:id", ctl.FireEmployee)

	employees.Post("/:id/image", ctl.UploadEmployeeImage)
	employees.Get("/:id/image", ctl.GetEmployeeImage)
	employees.Delete("/:id/image", ctl.DeleteEmployeeImage)

	employees.Post("/:id/attendance", attCtl.MarkAttendance)
	employees.Get("/:id/attendance", attCtl.GetEmployeeAttendance)

	api.Get("/attendances", attCtl.GetAttendanceByDate)
	api.Post("/attendances/generate", authMiddleware.OnlyAdmin(), attCtl.GenerateDailyAttendance)
	api.Post("/attendances/holiday", authMiddleware.OnlyAdmin(), attCtl.MarkDayHoliday)

	admins := api.Group("/admins", authMiddleware.OnlyAdmin())
	admins.Get("/", adminCtl.GetAdmins)
	admins.Post("/:id", adminCtl.MakeAdmin)
	admins.Delete("/:id", adminCtl.RemoveAdmin)
}
