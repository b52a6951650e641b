package service

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	feeModel "sekolahku_backend/internals/features/finance/fees/model"
	enrollmentModel "sekolahku_backend/internals/features/school/enrollments/model"
	helper "sekolahku_backend/internals/helpers"
)

type ResetFeesResult struct {
	Entries         []feeModel.MonthlyFeeModel `json:"entries"`
	ReceiptsDeleted int64                      `json:"receipts_deleted"`
}

// ResetEnrollmentFees mengembalikan seluruh ledger enrollment ke
// keadaan belum dibayar: semua kwitansi dihapus, setiap entry
// di-set fee_due = overrideFee ?? fee_due lama, paid = 0,
// balance = fee_due, paid_date = NULL.
//
// Operasi ini destruktif dan tidak bisa di-undo. Jumlah kwitansi
// yang terhapus dikembalikan supaya pemanggil bisa menampilkannya.
//
// Guard:
//   - enrollment ada                 → 404
//   - milik siswa yang diklaim       → 403
//   - belum complete                 → 409
//   - masih aktif                    → 400
func ResetEnrollmentFees(db *gorm.DB, studentID, enrollmentID uuid.UUID, overrideFee *float64) (*ResetFeesResult, error) {
	if overrideFee != nil && *overrideFee < 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Nominal tagihan tidak boleh negatif")
	}

	var result ResetFeesResult

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
		if enr.EnrollmentIsComplete {
			return fiber.NewError(fiber.StatusConflict, "Enrollment sudah complete dan diarsipkan")
		}
		if !enr.EnrollmentIsActive {
			return fiber.NewError(fiber.StatusBadRequest, "Enrollment sedang tidak aktif")
		}

		res := tx.Where("fee_payment_enrollment_id = ?", enrollmentID).
			Delete(&feeModel.FeePaymentModel{})
		if res.Error != nil {
			return res.Error
		}
		result.ReceiptsDeleted = res.RowsAffected

		var entries []feeModel.MonthlyFeeModel
		if err := helper.LockUpdate(tx).
			Where("monthly_fee_enrollment_id = ?", enrollmentID).
			Order("monthly_fee_due_date ASC").
			Find(&entries).Error; err != nil {
			return err
		}

		for i := range entries {
			e := &entries[i]
			if overrideFee != nil {
				e.MonthlyFeeDue = *overrideFee
			}
			e.MonthlyFeePaid = 0
			e.MonthlyFeeBalance = e.MonthlyFeeDue
			e.MonthlyFeePaidDate = nil
			if err := tx.Save(e).Error; err != nil {
				return err
			}
		}

		result.Entries = entries
		return nil
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		log.Println("[ERROR] ResetEnrollmentFees gagal:", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mereset tagihan enrollment")
	}

	return &result, nil
}
