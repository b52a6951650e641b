package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// =========================================================
// MODEL — exam_entries
// Hasil ujian per enrollment. Satu entry per (student, date)
// dan per (enrollment, date).
// =========================================================

type ExamEntryModel struct {
	ExamEntryID uuid.UUID `gorm:"column:exam_entry_id;type:uuid;primaryKey" json:"exam_entry_id"`

	ExamEntryStudentID    uuid.UUID `gorm:"column:exam_entry_student_id;type:uuid;not null;uniqueIndex:uq_exam_student_date,priority:1" json:"exam_entry_student_id"`
	ExamEntryEnrollmentID uuid.UUID `gorm:"column:exam_entry_enrollment_id;type:uuid;not null;uniqueIndex:uq_exam_enrollment_date,priority:1" json:"exam_entry_enrollment_id"`

	ExamEntryName string `gorm:"column:exam_entry_name;type:varchar(120);not null" json:"exam_entry_name"`
	// CT / Half-Yearly / Yearly / Final — pre-defined di front-end
	ExamEntryType string `gorm:"column:exam_entry_type;type:varchar(40);not null" json:"exam_entry_type"`

	ExamEntryDate time.Time `gorm:"column:exam_entry_date;type:date;not null;uniqueIndex:uq_exam_student_date,priority:2;uniqueIndex:uq_exam_enrollment_date,priority:2" json:"exam_entry_date"`

	ExamEntryNote *string `gorm:"column:exam_entry_note;type:text" json:"exam_entry_note,omitempty"`

	// Hasil per mapel: [{code, theory_marks, practical_marks, passed}, ...]
	ExamEntrySubjects datatypes.JSON `gorm:"column:exam_entry_subjects;type:jsonb" json:"exam_entry_subjects,omitempty"`

	ExamEntryStudentPassed bool `gorm:"column:exam_entry_student_passed;not null" json:"exam_entry_student_passed"`

	ExamEntryCreatedAt time.Time `gorm:"column:exam_entry_created_at;not null" json:"exam_entry_created_at"`
	ExamEntryUpdatedAt time.Time `gorm:"column:exam_entry_updated_at;not null" json:"exam_entry_updated_at"`
}

func (ExamEntryModel) TableName() string { return "exam_entries" }

func (m *ExamEntryModel) BeforeCreate(tx *gorm.DB) error {
	if m.ExamEntryID == uuid.Nil {
		m.ExamEntryID = uuid.New()
	}
	now := time.Now()
	if m.ExamEntryCreatedAt.IsZero() {
		m.ExamEntryCreatedAt = now
	}
	m.ExamEntryUpdatedAt = now
	return nil
}

func (m *ExamEntryModel) BeforeUpdate(tx *gorm.DB) error {
	m.ExamEntryUpdatedAt = time.Now()
	return nil
}
