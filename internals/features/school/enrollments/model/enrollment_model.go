package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// =========================================================
// MODEL — student_enrollments
// Penempatan satu siswa di satu section untuk satu sesi
// [session_start, session_end) — granularitas bulan, selalu
// dinormalkan ke tanggal 1.
//
// monthly_fee & subjects adalah SNAPSHOT dari section saat
// enrollment dibuat; perubahan section sesudahnya tidak
// mengubah enrollment berjalan.
// =========================================================

type EnrollmentModel struct {
	EnrollmentID uuid.UUID `gorm:"column:enrollment_id;type:uuid;primaryKey" json:"enrollment_id"`

	EnrollmentStudentID   uuid.UUID `gorm:"column:enrollment_student_id;type:uuid;not null;index:ix_enrollment_student;uniqueIndex:uq_enrollment_session,priority:1" json:"enrollment_student_id"`
	EnrollmentClassroomID uuid.UUID `gorm:"column:enrollment_classroom_id;type:uuid;not null;uniqueIndex:uq_enrollment_session,priority:2" json:"enrollment_classroom_id"`
	EnrollmentSectionID   uuid.UUID `gorm:"column:enrollment_section_id;type:uuid;not null;index:ix_enrollment_section;uniqueIndex:uq_enrollment_session,priority:3" json:"enrollment_section_id"`

	EnrollmentSessionStart time.Time `gorm:"column:enrollment_session_start;type:date;not null;uniqueIndex:uq_enrollment_session,priority:4" json:"enrollment_session_start"`
	EnrollmentSessionEnd   time.Time `gorm:"column:enrollment_session_end;type:date;not null;uniqueIndex:uq_enrollment_session,priority:5" json:"enrollment_session_end"`

	EnrollmentMonthlyFee float64 `gorm:"column:enrollment_monthly_fee;not null;default:0;check:enrollment_monthly_fee>=0" json:"enrollment_monthly_fee"`
	EnrollmentOneTimeFee float64 `gorm:"column:enrollment_one_time_fee;not null;default:0" json:"enrollment_one_time_fee"`

	EnrollmentSubjects datatypes.JSON `gorm:"column:enrollment_subjects;type:jsonb" json:"enrollment_subjects,omitempty"`

	EnrollmentIsActive   bool `gorm:"column:enrollment_is_active;not null;index:ix_enrollment_is_active" json:"enrollment_is_active"`
	EnrollmentIsComplete bool `gorm:"column:enrollment_is_complete;not null;default:false" json:"enrollment_is_complete"`

	EnrollmentCreatedAt time.Time `gorm:"column:enrollment_created_at;not null;index:ix_enrollment_created_at" json:"enrollment_created_at"`
	EnrollmentUpdatedAt time.Time `gorm:"column:enrollment_updated_at;not null" json:"enrollment_updated_at"`
}

func (EnrollmentModel) TableName() string { return "student_enrollments" }

/* ================= HOOKS ================= */

func (m *EnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.EnrollmentID == uuid.Nil {
		m.EnrollmentID = uuid.New()
	}
	now := time.Now()
	if m.EnrollmentCreatedAt.IsZero() {
		m.EnrollmentCreatedAt = now
	}
	m.EnrollmentUpdatedAt = now
	return nil
}

func (m *EnrollmentModel) BeforeUpdate(tx *gorm.DB) error {
	m.EnrollmentUpdatedAt = time.Now()
	return nil
}
