// internals/features/people/employees/dto/employee_dto.go
package dto

import (
	"encoding/json"
	"time"

	model "sekolahku_backend/internals/features/people/employees/model"
	studentModel "sekolahku_backend/internals/features/people/students/model"
	helper "sekolahku_backend/internals/helpers"
)

/* =============== REQUESTS =============== */

// Create
type CreateEmployeeRequest struct {
	EmployeeEmail    string `json:"employee_email" validate:"required,email,max=120"`
	EmployeePassword string `json:"employee_password" validate:"required,min=8,max=72"`

	EmployeeName        string `json:"employee_name" validate:"required,min=2,max=120"`
	EmployeeAddress     string `json:"employee_address" validate:"omitempty,max=2000"`
	EmployeePhone       string `json:"employee_phone" validate:"omitempty,max=20"`
	EmployeeDateOfBirth string `json:"employee_date_of_birth" validate:"required,datetime=2006-01-02"`

	EmployeeFatherName  string `json:"employee_father_name" validate:"omitempty,max=120"`
	EmployeeMotherName  string `json:"employee_mother_name" validate:"omitempty,max=120"`
	EmployeeFatherPhone string `json:"employee_father_phone" validate:"omitempty,max=20"`
	EmployeeMotherPhone string `json:"employee_mother_phone" validate:"omitempty,max=20"`

	EmployeeIdentityDocs []studentModel.IdentityDoc `json:"employee_identity_docs" validate:"omitempty,dive"`

	// teacher | admin | driver | staff
	EmployeeWorkRole string  `json:"employee_work_role" validate:"required,oneof=teacher admin driver staff"`
	EmployeeSalary   float64 `json:"employee_salary" validate:"omitempty,gte=0"`
}

// ToModel TIDAK mengisi password hash; controller yang bcrypt-kan.
func (r CreateEmployeeRequest) ToModel() *model.EmployeeModel {
	dob, _ := time.Parse("2006-01-02", r.EmployeeDateOfBirth)

	m := &model.EmployeeModel{
		EmployeeEmail:       r.EmployeeEmail,
		EmployeeName:        r.EmployeeName,
		EmployeeSearchName:  helper.FoldSearchName(r.EmployeeName),
		EmployeeAddress:     r.EmployeeAddress,
		EmployeePhone:       r.EmployeePhone,
		EmployeeDateOfBirth: dob,
		EmployeeFatherName:  r.EmployeeFatherName,
		EmployeeMotherName:  r.EmployeeMotherName,
		EmployeeFatherPhone: r.EmployeeFatherPhone,
		EmployeeMotherPhone: r.EmployeeMotherPhone,
		EmployeeWorkRole:    r.EmployeeWorkRole,
		EmployeeSalary:      r.EmployeeSalary,
		EmployeeIsActive:    true,
	}
	if len(r.EmployeeIdentityDocs) > 0 {
		if raw, err := json.Marshal(r.EmployeeIdentityDocs); err == nil {
			m.EmployeeIdentityDocs = raw
		}
	}
	return m
}

// Update (partial)
type UpdateEmployeeRequest struct {
	EmployeeName        *string `json:"employee_name" validate:"omitempty,min=2,max=120"`
	EmployeeAddress     *string `json:"employee_address" validate:"omitempty,max=2000"`
	EmployeePhone       *string `json:"employee_phone" validate:"omitempty,max=20"`
	EmployeeDateOfBirth *string `json:"employee_date_of_birth" validate:"omitempty,datetime=2006-01-02"`

	EmployeeFatherName  *string `json:"employee_father_name" validate:"omitempty,max=120"`
	EmployeeMotherName  *string `json:"employee_mother_name" validate:"omitempty,max=120"`
	EmployeeFatherPhone *string `json:"employee_father_phone" validate:"omitempty,max=20"`
	EmployeeMotherPhone *string `json:"employee_mother_phone" validate:"omitempty,max=20"`

	EmployeeIdentityDocs []studentModel.IdentityDoc `json:"employee_identity_docs" validate:"omitempty,dive"`

	EmployeeWorkRole *string  `json:"employee_work_role" validate:"omitempty,oneof=teacher admin driver staff"`
	EmployeeSalary   *float64 `json:"employee_salary" validate:"omitempty,gte=0"`

	EmployeeIsActive *bool `json:"employee_is_active" validate:"omitempty"`
	EmployeeIsFired  *bool `json:"employee_is_fired" validate:"omitempty"`
}

func (r UpdateEmployeeRequest) ApplyTo(m *model.EmployeeModel) {
	if r.EmployeeName != nil {
		m.EmployeeName = *r.EmployeeName
		m.EmployeeSearchName = helper.FoldSearchName(*r.EmployeeName)
	}
	if r.EmployeeAddress != nil {
		m.EmployeeAddress = *r.EmployeeAddress
	}
	if r.EmployeePhone != nil {
		m.EmployeePhone = *r.EmployeePhone
	}
	if r.EmployeeDateOfBirth != nil {
		if dob, err := time.Parse("2006-01-02", *r.EmployeeDateOfBirth); err == nil {
			m.EmployeeDateOfBirth = dob
		}
	}
	if r.EmployeeFatherName != nil {
		m.EmployeeFatherName = *r.EmployeeFatherName
	}
	if r.EmployeeMotherName != nil {
		m.EmployeeMotherName = *r.EmployeeMotherName
	}
	if r.EmployeeFatherPhone != nil {
		m.EmployeeFatherPhone = *r.EmployeeFatherPhone
	}
	if r.EmployeeMotherPhone != nil {
		m.EmployeeMotherPhone = *r.EmployeeMotherPhone
	}
	if r.EmployeeIdentityDocs != nil {
		if raw, err := json.Marshal(r.EmployeeIdentityDocs); err == nil {
			m.EmployeeIdentityDocs = raw
		}
	}
	if r.EmployeeWorkRole != nil {
		m.EmployeeWorkRole = *r.EmployeeWorkRole
	}
	if r.EmployeeSalary != nil {
		m.EmployeeSalary = *r.EmployeeSalary
	}
	if r.EmployeeIsActive != nil {
		m.EmployeeIsActive = *r.EmployeeIsActive
	}
	if r.EmployeeIsFired != nil {
		m.EmployeeIsFired = *r.EmployeeIsFired
	}
}

/* =============== AUTH =============== */

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string               `json:"access_token"`
	ExpiresAt   time.Time            `json:"expires_at"`
	Employee    *model.EmployeeModel `json:"employee"`
}
