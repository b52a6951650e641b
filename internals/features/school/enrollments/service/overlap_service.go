package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	enrollmentModel "sekolahku_backend/internals/features/school/enrollments/model"
	helper "sekolahku_backend/internals/helpers"
)

// =========================================================
// SERVICE — Enrollment Overlap Checker
//
// Dua interval [aStart,aEnd) dan [bStart,bEnd) dianggap
// overlap jika aStart < bEnd && aEnd > bStart. Overlap 0-1
// bulan ditoleransi (pindah section di tengah bulan itu
// wajar); >= 2 bulan berarti double-billing dan ditolak.
// =========================================================

const maxTolerableOverlapMonths = 1

// CheckOverlap mengembalikan enrollment lama yang overlapnya >= 2
// bulan dengan interval baru, atau nil kalau aman. Kedua tanggal
// dinormalkan ke tanggal 1 sebelum dibandingkan.
func CheckOverlap(tx *gorm.DB, studentID, sectionID uuid.UUID, newStart, newEnd time.Time) (*enrollmentModel.EnrollmentModel, error) {
	newStart = helper.FirstOfMonth(newStart)
	newEnd = helper.FirstOfMonth(newEnd)

	var existing []enrollmentModel.EnrollmentModel
	if err := tx.
		Where("enrollment_student_id = ? AND enrollment_section_id = ?", studentID, sectionID).
		Find(&existing).Error; err != nil {
		return nil, err
	}

	for i := range existing {
		e := &existing[i]
		aStart := helper.FirstOfMonth(e.EnrollmentSessionStart)
		aEnd := helper.FirstOfMonth(e.EnrollmentSessionEnd)

		if !(newStart.Before(aEnd) && newEnd.After(aStart)) {
			continue
		}

		if helper.MonthsOverlap(aStart, aEnd, newStart, newEnd) > maxTolerableOverlapMonths {
			return e, nil
		}
	}
	return nil, nil
}
