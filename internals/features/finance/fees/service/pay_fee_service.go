package service

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	feeModel "sekolahku_backend/internals/features/finance/fees/model"
	studentModel "sekolahku_backend/internals/features/people/students/model"
	enrollmentModel "sekolahku_backend/internals/features/school/enrollments/model"
	helper "sekolahku_backend/internals/helpers"
)

// =========================================================
// SERVICE — Payment Allocator
//
// Satu pembayaran dialokasikan ke tagihan bulanan dengan
// due date paling tua lebih dulu (prioritas tunggakan).
// Seluruh alokasi berjalan dalam SATU transaksi: overpayment
// atau kegagalan DB membatalkan semuanya, tidak ada alokasi
// parsial yang tersisa.
// =========================================================

type PayFeeResult struct {
	Receipt *feeModel.FeePaymentModel  `json:"receipt"`
	Entries []feeModel.MonthlyFeeModel `json:"entries"`
}

// PayFee mengalokasikan paidAmount ke seluruh tagihan outstanding
// milik enrollment, urut due date naik.
//
// Precondition (urutan penting, kegagalan pertama menang):
//  1. enrollment ada            → 404
//  2. enrollment belum complete → 409
//  3. siswa ada                 → 404
//  4. siswa masih aktif         → 400
//
// paidOn opsional: tanggal efektif pelunasan per-entry. Kwitansi
// sendiri SELALU dicap waktu sekarang (audit timestamp), terpisah
// dari tanggal efektif tersebut.
func PayFee(db *gorm.DB, studentID, enrollmentID uuid.UUID, paidAmount float64, paidOn *time.Time) (*PayFeeResult, error) {
	if paidAmount <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Jumlah pembayaran harus lebih dari 0")
	}

	var result PayFeeResult

	err := db.Transaction(func(tx *gorm.DB) error {
		// 1-2) Enrollment ada & belum complete. Kunci barisnya supaya
		// dua pembayaran bersamaan pada enrollment yang sama terserialisasi.
		var enr enrollmentModel.EnrollmentModel
		if err := helper.LockUpdate(tx).
			First(&enr, "enrollment_id = ?", enrollmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Enrollment tidak ditemukan")
			}
			return err
		}
		if enr.EnrollmentIsComplete {
			return fiber.NewError(fiber.StatusConflict, "Enrollment sudah complete dan diarsipkan")
		}

		// 3-4) Siswa ada & aktif.
		var st studentModel.StudentModel
		if err := tx.Select("student_id", "student_is_active").
			First(&st, "student_id = ?", studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
			}
			return err
		}
		if !st.StudentIsActive {
			return fiber.NewError(fiber.StatusBadRequest, "Siswa sudah tidak aktif")
		}

		// Semua entry, due date paling tua lebih dulu.
		var entries []feeModel.MonthlyFeeModel
		if err := helper.LockUpdate(tx).
			Where("monthly_fee_enrollment_id = ?", enrollmentID).
			Order("monthly_fee_due_date ASC").
			Find(&entries).Error; err != nil {
			return err
		}

		// Snapshot outstanding sebelum alokasi.
		originalBalance := 0.0
		for _, e := range entries {
			if e.MonthlyFeeBalance > 0 {
				originalBalance += e.MonthlyFeeBalance
			}
		}

		effectivePaidDate := time.Now()
		if paidOn != nil {
			effectivePaidDate = *paidOn
		}

		remaining := paidAmount
		for i := range entries {
			if remaining <= 0 {
				break
			}
			e := &entries[i]
			if e.MonthlyFeeBalance <= 0 {
				continue
			}
			if remaining >= e.MonthlyFeeBalance {
				// Lunas penuh.
				remaining -= e.MonthlyFeeBalance
				e.MonthlyFeePaid += e.MonthlyFeeBalance
				e.MonthlyFeeBalance = 0
				pd := effectivePaidDate
				e.MonthlyFeePaidDate = &pd
			} else {
				// Parsial.
				e.MonthlyFeePaid += remaining
				e.MonthlyFeeBalance -= remaining
				remaining = 0
			}
			if err := tx.Save(e).Error; err != nil {
				return err
			}
		}

		// Pembayaran melebihi total outstanding: batalkan SEMUA.
		if remaining > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Pembayaran melebihi total tagihan outstanding")
		}

		remainingBalance := 0.0
		for _, e := range entries {
			remainingBalance += e.MonthlyFeeBalance
		}

		receipt := feeModel.FeePaymentModel{
			FeePaymentStudentID:        studentID,
			FeePaymentEnrollmentID:     enrollmentID,
			FeePaymentPaidAmount:       paidAmount,
			FeePaymentPaidOn:           time.Now(), // audit timestamp, bukan effectivePaidDate
			FeePaymentOriginalBalance:  originalBalance,
			FeePaymentRemainingBalance: remainingBalance,
		}
		if err := tx.Create(&receipt).Error; err != nil {
			return err
		}

		result.Receipt = &receipt
		result.Entries = entries
		return nil
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		log.Println("[ERROR] PayFee gagal:", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal memproses pembayaran")
	}

	return &result, nil
}
