// internals/features/people/students/dto/student_dto.go
package dto

import (
	"encoding/json"
	"time"

	model "sekolahku_backend/internals/features/people/students/model"
	helper "sekolahku_backend/internals/helpers"
)

/* =============== REQUESTS =============== */

// Create
type CreateStudentRequest struct {
	StudentName        string `json:"student_name" validate:"required,min=2,max=120"`
	StudentAddress     string `json:"student_address" validate:"omitempty,max=2000"`
	StudentDateOfBirth string `json:"student_date_of_birth" validate:"required,datetime=2006-01-02"`

	StudentFatherName  string  `json:"student_father_name" validate:"omitempty,max=120"`
	StudentMotherName  string  `json:"student_mother_name" validate:"omitempty,max=120"`
	StudentFatherPhone *string `json:"student_father_phone" validate:"omitempty,max=20"`
	StudentMotherPhone *string `json:"student_mother_phone" validate:"omitempty,max=20"`

	StudentIdentityDocs []model.IdentityDoc `json:"student_identity_docs" validate:"omitempty,dive"`
}

func (r CreateStudentRequest) ToModel() *model.StudentModel {
	dob, _ := time.Parse("2006-01-02", r.StudentDateOfBirth)

	m := &model.StudentModel{
		StudentName:        r.StudentName,
		StudentSearchName:  helper.FoldSearchName(r.StudentName),
		StudentAddress:     r.StudentAddress,
		StudentDateOfBirth: dob,
		StudentFatherName:  r.StudentFatherName,
		StudentMotherName:  r.StudentMotherName,
		StudentFatherPhone: r.StudentFatherPhone,
		StudentMotherPhone: r.StudentMotherPhone,
		StudentIsActive:    true,
	}
	if len(r.StudentIdentityDocs) > 0 {
		if raw, err := json.Marshal(r.StudentIdentityDocs); err == nil {
			m.StudentIdentityDocs = raw
		}
	}
	return m
}

// Update (partial)
type UpdateStudentRequest struct {
	StudentName        *string `json:"student_name" validate:"omitempty,min=2,max=120"`
	StudentAddress     *string `json:"student_address" validate:"omitempty,max=2000"`
	StudentDateOfBirth *string `json:"student_date_of_birth" validate:"omitempty,datetime=2006-01-02"`

	StudentFatherName  *string `json:"student_father_name" validate:"omitempty,max=120"`
	StudentMotherName  *string `json:"student_mother_name" validate:"omitempty,max=120"`
	StudentFatherPhone *string `json:"student_father_phone" validate:"omitempty,max=20"`
	StudentMotherPhone *string `json:"student_mother_phone" validate:"omitempty,max=20"`

	StudentIdentityDocs []model.IdentityDoc `json:"student_identity_docs" validate:"omitempty,dive"`

	StudentIsActive *bool `json:"student_is_active" validate:"omitempty"`
}

// Terapkan perubahan ke model existing
func (r UpdateStudentRequest) ApplyTo(m *model.StudentModel) {
	if r.StudentName != nil {
		m.StudentName = *r.StudentName
		m.StudentSearchName = helper.FoldSearchName(*r.StudentName)
	}
	if r.StudentAddress != nil {
		m.StudentAddress = *r.StudentAddress
	}
	if r.StudentDateOfBirth != nil {
		if dob, err := time.Parse("2006-01-02", *r.StudentDateOfBirth); err == nil {
			m.StudentDateOfBirth = dob
		}
	}
	if r.StudentFatherName != nil {
		m.StudentFatherName = *r.StudentFatherName
	}
	if r.StudentMotherName != nil {
		m.StudentMotherName = *r.StudentMotherName
	}
	if r.StudentFatherPhone != nil {
		m.StudentFatherPhone = r.StudentFatherPhone
	}
	if r.StudentMotherPhone != nil {
		m.StudentMotherPhone = r.StudentMotherPhone
	}
	if r.StudentIdentityDocs != nil {
		if raw, err := json.Marshal(r.StudentIdentityDocs); err == nil {
			m.StudentIdentityDocs = raw
		}
	}
	if r.StudentIsActive != nil {
		m.StudentIsActive = *r.StudentIsActive
	}
}
