package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL — classrooms
// Nama kelas disimpan uppercase dan unik se-sekolah.
// =========================================================

type ClassroomModel struct {
	ClassroomID uuid.UUID `gorm:"column:classroom_id;type:uuid;primaryKey" json:"classroom_id"`

	ClassroomName     string  `gorm:"column:classroom_name;type:varchar(60);not null;uniqueIndex:uq_classroom_name" json:"classroom_name"`
	ClassroomIsActive bool    `gorm:"column:classroom_is_active;not null" json:"classroom_is_active"`
	ClassroomDefaultFee float64 `gorm:"column:classroom_default_fee;not null;default:0;check:classroom_default_fee>=0" json:"classroom_default_fee"`

	ClassroomCreatedAt time.Time `gorm:"column:classroom_created_at;not null" json:"classroom_created_at"`
	ClassroomUpdatedAt time.Time `gorm:"column:classroom_updated_at;not null" json:"classroom_updated_at"`

	Sections []ClassSectionModel `gorm:"foreignKey:SectionClassroomID;references:ClassroomID" json:"sections,omitempty"`
}

func (ClassroomModel) TableName() string { return "classrooms" }

func (m *ClassroomModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassroomID == uuid.Nil {
		m.ClassroomID = uuid.New()
	}
	now := time.Now()
	if m.ClassroomCreatedAt.IsZero() {
		m.ClassroomCreatedAt = now
	}
	m.ClassroomUpdatedAt = now
	return nil
}

func (m *ClassroomModel) BeforeUpdate(tx *gorm.DB) error {
	m.ClassroomUpdatedAt = time.Now()
	return nil
}
