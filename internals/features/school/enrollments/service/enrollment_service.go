package service

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	feeModel "sekolahku_backend/internals/features/finance/fees/model"
	feeService "sekolahku_backend/internals/features/finance/fees/service"
	studentModel "sekolahku_backend/internals/features/people/students/model"
	classModel "sekolahku_backend/internals/features/school/classrooms/model"
	enrollmentModel "sekolahku_backend/internals/features/school/enrollments/model"
	helper "sekolahku_backend/internals/helpers"
)

// =========================================================
// SERVICE — Enrollment Lifecycle Manager
//
// State: Active (default) ⇄ Inactive → Complete (arsip).
// PayFee dan Reset mensyaratkan belum complete; Reset juga
// mensyaratkan aktif.
// =========================================================

type CreateEnrollmentInput struct {
	StudentID    uuid.UUID
	SectionID    uuid.UUID
	SessionStart time.Time
	SessionEnd   time.Time

	// nil = pakai snapshot default dari section
	MonthlyFee *float64
	OneTimeFee *float64
}

type CreateEnrollmentResult struct {
	Enrollment *enrollmentModel.EnrollmentModel `json:"enrollment"`
	Fees       []feeModel.MonthlyFeeModel       `json:"fees"`
}

// CreateEnrollment membuat enrollment baru beserta jadwal tagihan
// bulanannya dalam satu transaksi. monthly_fee dan subjects
// di-snapshot dari section saat pembuatan.
func CreateEnrollment(db *gorm.DB, in CreateEnrollmentInput) (*CreateEnrollmentResult, error) {
	start := helper.FirstOfMonth(in.SessionStart)
	end := helper.FirstOfMonth(in.SessionEnd)
	if !start.Before(end) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "session_start harus sebelum session_end")
	}

	var result CreateEnrollmentResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var st studentModel.StudentModel
		if err := tx.First(&st, "student_id = ?", in.StudentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
			}
			return err
		}
		if !st.StudentIsActive {
			return fiber.NewError(fiber.StatusBadRequest, "Siswa sudah tidak aktif")
		}

		var section classModel.ClassSectionModel
		if err := tx.First(&section, "section_id = ?", in.SectionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Section tidak ditemukan")
			}
			return err
		}
		if !section.SectionIsActive {
			return fiber.NewError(fiber.StatusBadRequest, "Section sedang tidak aktif")
		}

		conflict, err := CheckOverlap(tx, in.StudentID, in.SectionID, start, end)
		if err != nil {
			return err
		}
		if conflict != nil {
			return fiber.NewError(fiber.StatusConflict, "Siswa sudah terdaftar di section ini pada periode yang tumpang tindih")
		}

		monthlyFee := section.SectionDefaultFee
		if in.MonthlyFee != nil {
			monthlyFee = *in.MonthlyFee
		}
		if monthlyFee < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nominal tagihan bulanan tidak boleh negatif")
		}
		oneTimeFee := 0.0
		if in.OneTimeFee != nil {
			oneTimeFee = *in.OneTimeFee
		}

		enr := enrollmentModel.EnrollmentModel{
			EnrollmentStudentID:    in.StudentID,
			EnrollmentClassroomID:  section.SectionClassroomID,
			EnrollmentSectionID:    in.SectionID,
			EnrollmentSessionStart: start,
			EnrollmentSessionEnd:   end,
			EnrollmentMonthlyFee:   monthlyFee,
			EnrollmentOneTimeFee:   oneTimeFee,
			EnrollmentSubjects:     section.SectionSubjects,
			EnrollmentIsActive:     true,
			EnrollmentIsComplete:   false,
		}
		if err := tx.Create(&enr).Error; err != nil {
			return err
		}

		fees, err := feeService.GenerateSchedule(tx, enr.EnrollmentID, start, end, monthlyFee)
		if err != nil {
			return err
		}

		result.Enrollment = &enr
		result.Fees = fees
		return nil
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		log.Println("[ERROR] CreateEnrollment gagal:", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat enrollment")
	}

	return &result, nil
}

type UpdateEnrollmentInput struct {
	IsActive   *bool
	IsComplete *bool
	OneTimeFee *float64
}

// UpdateEnrollment mengubah state lifecycle dan/atau one_time_fee.
// Mengembalikan is_complete ke false lewat endpoint ini adalah
// override administratif, bukan transisi normal.
func UpdateEnrollment(db *gorm.DB, studentID, enrollmentID uuid.UUID, in UpdateEnrollmentInput) (*enrollmentModel.EnrollmentModel, error) {
	var enr enrollmentModel.EnrollmentModel

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := helper.LockUpdate(tx).
			First(&enr, "enrollment_id = ?", enrollmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Enrollment tidak ditemukan")
			}
			return err
		}
		if enr.EnrollmentStudentID != studentID {
			return fiber.NewError(fiber.StatusForbidden, "Enrollment bukan milik siswa ini")
		}

		// Enrollment complete immutable, kecuali request ini sendiri
		// membuka arsipnya (is_complete=false).
		reopening := in.IsComplete != nil && !*in.IsComplete
		if enr.EnrollmentIsComplete && !reopening {
			return fiber.NewError(fiber.StatusConflict, "Enrollment sudah complete dan diarsipkan")
		}

		if in.IsActive != nil {
			enr.EnrollmentIsActive = *in.IsActive
		}
		if in.IsComplete != nil {
			enr.EnrollmentIsComplete = *in.IsComplete
		}
		if in.OneTimeFee != nil {
			enr.EnrollmentOneTimeFee = *in.OneTimeFee
		}

		return tx.Save(&enr).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		log.Println("[ERROR] UpdateEnrollment gagal:", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui enrollment")
	}

	return &enr, nil
}

// DeleteEnrollment menghapus enrollment beserta jadwal tagihan dan
// hasil ujiannya. Enrollment yang masih punya entri tagihan tidak
// boleh dihapus tanpa force. Kwitansi sengaja TIDAK ikut terhapus:
// itu jejak audit uang yang pernah masuk.
func DeleteEnrollment(db *gorm.DB, studentID, enrollmentID uuid.UUID, force bool) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var enr enrollmentModel.EnrollmentModel
		if err := helper.LockUpdate(tx).
			First(&enr, "enrollment_id = ?", enrollmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Enrollment tidak ditemukan")
			}
			return err
		}
		if enr.EnrollmentStudentID != studentID {
			return fiber.NewError(fiber.StatusForbidden, "Enrollment bukan milik siswa ini")
		}

		var fees int64
		if err := tx.Model(&feeModel.MonthlyFeeModel{}).
			Where("monthly_fee_enrollment_id = ?", enrollmentID).
			Count(&fees).Error; err != nil {
			return err
		}
		if fees > 0 && !force {
			return fiber.NewError(fiber.StatusConflict, "Enrollment masih punya entri tagihan; gunakan force untuk menghapus")
		}

		if err := tx.Where("monthly_fee_enrollment_id = ?", enrollmentID).
			Delete(&feeModel.MonthlyFeeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("exam_entry_enrollment_id = ?", enrollmentID).
			Delete(&enrollmentModel.ExamEntryModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&enr).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		log.Println("[ERROR] DeleteEnrollment gagal:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus enrollment")
	}
	return nil
}
