// internals/features/finance/fees/controller/fee_report_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	model "sekolahku_backend/internals/features/finance/fees/model"
	helper "sekolahku_backend/internals/helpers"
)

type FeeReportController struct {
	DB *gorm.DB
}

// =======================================================
// PAYMENTS INFO — rekap kwitansi untuk laporan keuangan
// Filter: ?from=YYYY-MM-DD&to=YYYY-MM-DD (default: bulan ini)
// =======================================================

func (ctl *FeeReportController) GetPaymentsInfo(c *fiber.Ctx) error {
	now := time.Now().UTC()
	from := helper.FirstOfMonth(now)
	to := from.AddDate(0, 1, 0)

	if s := c.Query("from"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format from harus YYYY-MM-DD")
		}
		from = parsed
	}
	if s := c.Query("to"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format to harus YYYY-MM-DD")
		}
		// inklusif sampai akhir hari
		to = parsed.AddDate(0, 0, 1)
	}
	if !from.Before(to) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Rentang tanggal tidak valid")
	}

	paging := helper.ResolvePaging(c, 50, 200)

	q := ctl.DB.Model(&model.FeePaymentModel{}).
		Where("fee_payment_paid_on >= ? AND fee_payment_paid_on < ?", from, to)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung kwitansi")
	}

	var receipts []model.FeePaymentModel
	if err := q.Order("fee_payment_paid_on DESC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&receipts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kwitansi")
	}

	type agg struct {
		TotalCollected float64
	}
	var a agg
	if err := ctl.DB.Model(&model.FeePaymentModel{}).
		Select("COALESCE(SUM(fee_payment_paid_amount), 0) AS total_collected").
		Where("fee_payment_paid_on >= ? AND fee_payment_paid_on < ?", from, to).
		Scan(&a).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung total")
	}

	var outstanding float64
	if err := ctl.DB.Model(&model.MonthlyFeeModel{}).
		Select("COALESCE(SUM(monthly_fee_balance), 0)").
		Where("monthly_fee_balance > 0").
		Scan(&outstanding).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung outstanding")
	}

	return helper.JsonList(c, "OK", fiber.Map{
		"receipts":          receipts,
		"total_collected":   a.TotalCollected,
		"total_outstanding": outstanding,
		"from":              from.Format("2006-01-02"),
		"to":                to.AddDate(0, 0, -1).Format("2006-01-02"),
	}, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// =======================================================
// OVERDUE — entry yang lewat jatuh tempo dan masih ada saldo
// =======================================================

func (ctl *FeeReportController) GetOverdueFees(c *fiber.Ctx) error {
	today := helper.ZeroTimeOfDay(time.Now().UTC())

	type overdueRow struct {
		MonthlyFeeID           string    `json:"monthly_fee_id"`
		MonthlyFeeEnrollmentID string    `json:"monthly_fee_enrollment_id"`
		StudentID              string    `json:"student_id"`
		StudentName            string    `json:"student_name"`
		MonthlyFeeDueDate      time.Time `json:"monthly_fee_due_date"`
		MonthlyFeeBalance      float64   `json:"monthly_fee_balance"`
	}

	var rows []overdueRow
	if err := ctl.DB.Table("student_monthly_fees").
		Select(`student_monthly_fees.monthly_fee_id,
			student_monthly_fees.monthly_fee_enrollment_id,
			students.student_id,
			students.student_name,
			student_monthly_fees.monthly_fee_due_date,
			student_monthly_fees.monthly_fee_balance`).
		Joins("JOIN student_enrollments ON student_enrollments.enrollment_id = student_monthly_fees.monthly_fee_enrollment_id").
		Joins("JOIN students ON students.student_id = student_enrollments.enrollment_student_id").
		Where("student_monthly_fees.monthly_fee_balance > 0").
		Where("student_monthly_fees.monthly_fee_due_date < ?", today).
		Where("student_enrollments.enrollment_is_active = ?", true).
		Order("student_monthly_fees.monthly_fee_due_date ASC").
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil tunggakan")
	}

	return helper.JsonOK(c, "OK", rows)
}
