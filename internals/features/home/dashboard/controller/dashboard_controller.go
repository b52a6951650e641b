// internals/features/home/dashboard/controller/dashboard_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feeModel "sekolahku_backend/internals/features/finance/fees/model"
	employeeModel "sekolahku_backend/internals/features/people/employees/model"
	studentModel "sekolahku_backend/internals/features/people/students/model"
	enrollmentModel "sekolahku_backend/internals/features/school/enrollments/model"
	vehicleModel "sekolahku_backend/internals/features/transport/vehicles/model"
	helper "sekolahku_backend/internals/helpers"
)

type DashboardController struct {
	DB *gorm.DB
}

// GetDashboard mengembalikan ringkasan angka untuk halaman depan admin.
func (ctl *DashboardController) GetDashboard(c *fiber.Ctx) error {
	var (
		activeEmployees   int64
		teachers          int64
		admins            int64
		totalStudents     int64
		activeStudents    int64
		activeEnrollments int64
		recentEnrollments int64
		vehicles          int64
		presentToday      int64
	)

	type countQuery struct {
		dest  *int64
		model interface{}
		where string
		args  []interface{}
	}

	now := time.Now().UTC()
	last30 := now.AddDate(0, 0, -30)

	counts := []countQuery{
		{&activeEmployees, &employeeModel.EmployeeModel{}, "employee_is_active = ? AND employee_is_fired = ?", []interface{}{true, false}},
		{&teachers, &employeeModel.TeacherModel{}, "", nil},
		{&admins, &employeeModel.AdminModel{}, "", nil},
		{&totalStudents, &studentModel.StudentModel{}, "", nil},
		{&activeStudents, &studentModel.StudentModel{}, "student_is_active = ?", []interface{}{true}},
		{&activeEnrollments, &enrollmentModel.EnrollmentModel{}, "enrollment_is_active = ? AND enrollment_is_complete = ?", []interface{}{true, false}},
		{&recentEnrollments, &enrollmentModel.EnrollmentModel{}, "enrollment_created_at >= ?", []interface{}{last30}},
		{&vehicles, &vehicleModel.VehicleModel{}, "", nil},
	}
	for _, q := range counts {
		tx := ctl.DB.Model(q.model)
		if q.where != "" {
			tx = tx.Where(q.where, q.args...)
		}
		if err := tx.Count(q.dest).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung statistik")
		}
	}

	today := helper.ZeroTimeOfDay(now)
	if err := ctl.DB.Model(&employeeModel.EmployeeAttendanceModel{}).
		Where("attendance_date = ? AND attendance_is_present = ? AND attendance_is_invalid = ?", today, true, false).
		Count(&presentToday).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung kehadiran")
	}

	// Pemasukan bulan berjalan.
	monthStart := helper.FirstOfMonth(now)
	var collectedThisMonth float64
	if err := ctl.DB.Model(&feeModel.FeePaymentModel{}).
		Select("COALESCE(SUM(fee_payment_paid_amount), 0)").
		Where("fee_payment_paid_on >= ?", monthStart).
		Scan(&collectedThisMonth).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung pemasukan bulan ini")
	}

	// Tunggakan sampai akhir bulan berjalan (tagihan bulan depan tidak ikut).
	nextMonth := monthStart.AddDate(0, 1, 0)
	var totalDue float64
	if err := ctl.DB.Model(&feeModel.MonthlyFeeModel{}).
		Select("COALESCE(SUM(monthly_fee_balance), 0)").
		Where("monthly_fee_balance > 0 AND monthly_fee_due_date < ?", nextMonth).
		Scan(&totalDue).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung tunggakan")
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"active_employees":        activeEmployees,
		"teachers":                teachers,
		"admins":                  admins,
		"total_students":          totalStudents,
		"active_students":         activeStudents,
		"active_enrollments":      activeEnrollments,
		"enrollments_last_30days": recentEnrollments,
		"vehicles":                vehicles,
		"employees_present":       presentToday,
		"collected_this_month":    collectedThisMonth,
		"total_due":               totalDue,
	})
}
