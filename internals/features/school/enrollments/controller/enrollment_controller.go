// internals/features/school/enrollments/controller/enrollment_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	feeModel "sekolahku_backend/internals/features/finance/fees/model"
	feeService "sekolahku_backend/internals/features/finance/fees/service"
	"sekolahku_backend/internals/features/school/enrollments/dto"
	model "sekolahku_backend/internals/features/school/enrollments/model"
	"sekolahku_backend/internals/features/school/enrollments/service"
	helper "sekolahku_backend/internals/helpers"
)

type EnrollmentController struct {
	DB *gorm.DB
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// =======================================================
// CREATE — /students/:studentId/enrollments
// =======================================================

func (ctl *EnrollmentController) CreateEnrollment(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "studentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	var req dto.CreateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	start, end := req.SessionDates()
	result, err := service.CreateEnrollment(ctl.DB, service.CreateEnrollmentInput{
		StudentID:    studentID,
		SectionID:    req.SectionID,
		SessionStart: start,
		SessionEnd:   end,
		MonthlyFee:   req.MonthlyFee,
		OneTimeFee:   req.OneTimeFee,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Enrollment berhasil dibuat", result)
}

// =======================================================
// LIST / DETAIL
// =======================================================

func (ctl *EnrollmentController) GetEnrollments(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "studentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	var enrollments []model.EnrollmentModel
	if err := ctl.DB.Where("enrollment_student_id = ?", studentID).
		Order("enrollment_session_start DESC").
		Find(&enrollments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar enrollment")
	}
	return helper.JsonOK(c, "OK", enrollments)
}

// GetEnrollmentDetails: enrollment + ledger + kwitansi + ringkasan saldo.
func (ctl *EnrollmentController) GetEnrollmentDetails(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "studentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}
	enrollmentID, err := parseUUIDParam(c, "enrollmentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID enrollment tidak valid")
	}

	var enr model.EnrollmentModel
	if err := ctl.DB.First(&enr, "enrollment_id = ?", enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Enrollment tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil enrollment")
	}
	if enr.EnrollmentStudentID != studentID {
		return helper.JsonError(c, fiber.StatusForbidden, "Enrollment bukan milik siswa ini")
	}

	var fees []feeModel.MonthlyFeeModel
	if err := ctl.DB.Where("monthly_fee_enrollment_id = ?", enrollmentID).
		Order("monthly_fee_due_date ASC").
		Find(&fees).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil tagihan")
	}

	var receipts []feeModel.FeePaymentModel
	if err := ctl.DB.Where("fee_payment_enrollment_id = ?", enrollmentID).
		Order("fee_payment_paid_on DESC").
		Find(&receipts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kwitansi")
	}

	totalDue, totalPaid, totalBalance := 0.0, 0.0, 0.0
	for _, f := range fees {
		totalDue += f.MonthlyFeeDue
		totalPaid += f.MonthlyFeePaid
		totalBalance += f.MonthlyFeeBalance
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"enrollment": enr,
		"fees":       fees,
		"receipts":   receipts,
		"summary": fiber.Map{
			"total_due":     totalDue,
			"total_paid":    totalPaid,
			"total_balance": totalBalance,
		},
	})
}

// =======================================================
// UPDATE / DELETE
// =======================================================

func (ctl *EnrollmentController) UpdateEnrollment(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "studentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}
	enrollmentID, err := parseUUIDParam(c, "enrollmentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID enrollment tidak valid")
	}

	var req dto.UpdateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	enr, err := service.UpdateEnrollment(ctl.DB, studentID, enrollmentID, service.UpdateEnrollmentInput{
		IsActive:   req.EnrollmentIsActive,
		IsComplete: req.EnrollmentIsComplete,
		OneTimeFee: req.EnrollmentOneTimeFee,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Enrollment berhasil diperbarui", enr)
}

func (ctl *EnrollmentController) DeleteEnrollment(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "studentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}
	enrollmentID, err := parseUUIDParam(c, "enrollmentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID enrollment tidak valid")
	}
	force := c.Query("force") == "true"

	if err := service.DeleteEnrollment(ctl.DB, studentID, enrollmentID, force); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Enrollment berhasil dihapus", fiber.Map{"enrollment_id": enrollmentID})
}

// =======================================================
// PAY / RESET — delegasi ke finance/fees service
// =======================================================

func (ctl *EnrollmentController) PayFee(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "studentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}
	enrollmentID, err := parseUUIDParam(c, "enrollmentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID enrollment tidak valid")
	}

	var req dto.PayFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	result, err := feeService.PayFee(ctl.DB, studentID, enrollmentID, req.PaidAmount, req.PaidOnDate())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Pembayaran berhasil dialokasikan", result)
}

func (ctl *EnrollmentController) ResetFees(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "studentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}
	enrollmentID, err := parseUUIDParam(c, "enrollmentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID enrollment tidak valid")
	}

	var req dto.ResetFeesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	result, err := feeService.ResetEnrollmentFees(ctl.DB, studentID, enrollmentID, req.MonthlyFee)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Tagihan enrollment berhasil direset", result)
}

// RegenerateFees melengkapi jadwal tagihan enrollment: bulan sesi
// yang belum punya entri dibuatkan, entri yang sudah ada dibiarkan.
func (ctl *EnrollmentController) RegenerateFees(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "studentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}
	enrollmentID, err := parseUUIDParam(c, "enrollmentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID enrollment tidak valid")
	}

	created, err := feeService.RegenerateSchedule(ctl.DB, studentID, enrollmentID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Jadwal tagihan berhasil dilengkapi", fiber.Map{
		"enrollment_id":   enrollmentID,
		"entries_created": created,
	})
}
