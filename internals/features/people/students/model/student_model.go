package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// =========================================================
// MODEL — students
// =========================================================

type StudentModel struct {
	// PK
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;primaryKey" json:"student_id"`

	StudentName       string `gorm:"column:student_name;type:varchar(120);not null" json:"student_name"`
	StudentSearchName string `gorm:"column:student_search_name;type:varchar(120);not null;index:ix_student_search_name" json:"student_search_name"`
	StudentAddress    string `gorm:"column:student_address;type:text;not null" json:"student_address"`

	StudentDateOfBirth time.Time `gorm:"column:student_date_of_birth;type:date;not null" json:"student_date_of_birth"`

	StudentFatherName  string  `gorm:"column:student_father_name;type:varchar(120);not null" json:"student_father_name"`
	StudentMotherName  string  `gorm:"column:student_mother_name;type:varchar(120);not null" json:"student_mother_name"`
	StudentFatherPhone *string `gorm:"column:student_father_phone;type:varchar(20)" json:"student_father_phone,omitempty"`
	StudentMotherPhone *string `gorm:"column:student_mother_phone;type:varchar(20)" json:"student_mother_phone,omitempty"`

	// Daftar dokumen identitas (KTP/KK/akta, dsb) — array of {doc_name, doc_value}
	StudentIdentityDocs datatypes.JSON `gorm:"column:student_identity_docs;type:jsonb" json:"student_identity_docs,omitempty"`

	StudentIsActive bool `gorm:"column:student_is_active;not null;index:ix_student_is_active" json:"student_is_active"`

	// Foto profil disimpan langsung di DB (webp), di-stream via endpoint image
	StudentProfileImage []byte `gorm:"column:student_profile_image" json:"-"`

	StudentCreatedAt time.Time `gorm:"column:student_created_at;not null" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"column:student_updated_at;not null" json:"student_updated_at"`
}

func (StudentModel) TableName() string { return "students" }

// IdentityDoc adalah elemen dari student_identity_docs.
type IdentityDoc struct {
	DocName  string `json:"doc_name" validate:"required"`
	DocValue string `json:"doc_value" validate:"required"`
}

/* ================= HOOKS ================= */

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	now := time.Now()
	if m.StudentCreatedAt.IsZero() {
		m.StudentCreatedAt = now
	}
	m.StudentUpdatedAt = now
	return nil
}

func (m *StudentModel) BeforeUpdate(tx *gorm.DB) error {
	m.StudentUpdatedAt = time.Now()
	return nil
}
