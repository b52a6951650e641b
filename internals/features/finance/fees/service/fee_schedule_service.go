package service

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	feeModel "sekolahku_backend/internals/features/finance/fees/model"
	enrollmentModel "sekolahku_backend/internals/features/school/enrollments/model"
	helper "sekolahku_backend/internals/helpers"
)

// =========================================================
// SERVICE — Monthly Fee Ledger
// =========================================================

// GenerateSchedule membuat satu MonthlyFeeModel per bulan pada
// interval [start, end) untuk sebuah enrollment. Insert memakai
// ON CONFLICT DO NOTHING pada (enrollment, due_date): bulan yang
// sudah punya entri dilewati, jadi aman dipanggil ulang.
// Dipanggil DI DALAM transaksi pembuatan enrollment: kalau insert
// jadwal gagal, enrollment ikut rollback.
func GenerateSchedule(tx *gorm.DB, enrollmentID uuid.UUID, start, end time.Time, monthlyFee float64) ([]feeModel.MonthlyFeeModel, error) {
	start = helper.FirstOfMonth(start)
	end = helper.FirstOfMonth(end)

	months := helper.MonthsBetween(start, end)
	if months <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Sesi enrollment minimal satu bulan")
	}

	entries := make([]feeModel.MonthlyFeeModel, 0, months)
	for i := 0; i < months; i++ {
		due := start.AddDate(0, i, 0)
		entries = append(entries, feeModel.MonthlyFeeModel{
			MonthlyFeeEnrollmentID: enrollmentID,
			MonthlyFeeDueDate:      due,
			MonthlyFeeDue:          monthlyFee,
			MonthlyFeePaid:         0,
			MonthlyFeeBalance:      monthlyFee,
		})
	}

	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "monthly_fee_enrollment_id"},
			{Name: "monthly_fee_due_date"},
		},
		DoNothing: true,
	}).Create(&entries).Error; err != nil {
		log.Println("[ERROR] Gagal membuat jadwal tagihan:", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat jadwal tagihan bulanan")
	}
	return entries, nil
}

// RegenerateSchedule mengisi bulan-bulan yang belum punya entri
// tagihan pada sesi enrollment saat ini. Dipakai setelah sesi
// diperpanjang (session_end digeser lebih jauh): entri lama — termasuk yang
// sudah terbayar sebagian — tidak disentuh sama sekali.
// Mengembalikan jumlah entri baru yang dibuat.
func RegenerateSchedule(db *gorm.DB, studentID, enrollmentID uuid.UUID) (int64, error) {
	var created int64

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
			return fiber.NewError(fiber.StatusConflict, "Enrollment sudah complete")
		}

		var before int64
		if err := tx.Model(&feeModel.MonthlyFeeModel{}).
			Where("monthly_fee_enrollment_id = ?", enrollmentID).
			Count(&before).Error; err != nil {
			return err
		}

		if _, err := GenerateSchedule(tx, enrollmentID,
			enr.EnrollmentSessionStart, enr.EnrollmentSessionEnd,
			enr.EnrollmentMonthlyFee); err != nil {
			return err
		}

		var after int64
		if err := tx.Model(&feeModel.MonthlyFeeModel{}).
			Where("monthly_fee_enrollment_id = ?", enrollmentID).
			Count(&after).Error; err != nil {
			return err
		}
		created = after - before
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
