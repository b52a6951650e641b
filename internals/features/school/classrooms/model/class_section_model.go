package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// =========================================================
// MODEL — class_sections
// Section membawa daftar mata pelajaran + default fee yang
// akan di-snapshot ke enrollment saat pendaftaran.
// =========================================================

type ClassSectionModel struct {
	SectionID uuid.UUID `gorm:"column:section_id;type:uuid;primaryKey" json:"section_id"`

	// FK → classrooms
	SectionClassroomID uuid.UUID `gorm:"column:section_classroom_id;type:uuid;not null;uniqueIndex:uq_section_classroom_name,priority:1" json:"section_classroom_id"`

	SectionName     string  `gorm:"column:section_name;type:varchar(60);not null;uniqueIndex:uq_section_classroom_name,priority:2" json:"section_name"`
	SectionIsActive bool    `gorm:"column:section_is_active;not null" json:"section_is_active"`
	SectionDefaultFee float64 `gorm:"column:section_default_fee;not null;default:0;check:section_default_fee>=0" json:"section_default_fee"`

	// Mapel lengkap (JSON) + mirror kode mapel (text[]) untuk filter cepat
	SectionSubjects     datatypes.JSON `gorm:"column:section_subjects;type:jsonb" json:"section_subjects,omitempty"`
	SectionSubjectCodes pq.StringArray `gorm:"column:section_subject_codes;type:text[]" json:"section_subject_codes,omitempty"`

	SectionCreatedAt time.Time `gorm:"column:section_created_at;not null" json:"section_created_at"`
	SectionUpdatedAt time.Time `gorm:"column:section_updated_at;not null" json:"section_updated_at"`

	Classroom *ClassroomModel `gorm:"foreignKey:SectionClassroomID;references:ClassroomID" json:"classroom,omitempty"`
}

func (ClassSectionModel) TableName() string { return "class_sections" }

// Subject adalah elemen dari section_subjects.
type Subject struct {
	Name          string `json:"name" validate:"required"`
	Code          string `json:"code" validate:"required"`
	TheoryExam    bool   `json:"theory_exam"`
	PracticalExam bool   `json:"practical_exam"`
}

/* ================= HOOKS ================= */

func (m *ClassSectionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SectionID == uuid.Nil {
		m.SectionID = uuid.New()
	}
	now := time.Now()
	if m.SectionCreatedAt.IsZero() {
		m.SectionCreatedAt = now
	}
	m.SectionUpdatedAt = now
	return nil
}

func (m *ClassSectionModel) BeforeUpdate(tx *gorm.DB) error {
	m.SectionUpdatedAt = time.Now()
	return nil
}
