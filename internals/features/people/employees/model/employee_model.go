package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// =========================================================
// MODEL — employees
// =========================================================

type EmployeeModel struct {
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;primaryKey" json:"employee_id"`

	EmployeeEmail        string `gorm:"column:employee_email;type:varchar(120);not null;uniqueIndex:uq_employee_email" json:"employee_email"`
	EmployeePasswordHash string `gorm:"column:employee_password_hash;type:varchar(120);not null" json:"-"`

	EmployeeName       string `gorm:"column:employee_name;type:varchar(120);not null" json:"employee_name"`
	EmployeeSearchName string `gorm:"column:employee_search_name;type:varchar(120);not null;index:ix_employee_search_name" json:"employee_search_name"`
	EmployeeAddress    string `gorm:"column:employee_address;type:text;not null;default:''" json:"employee_address"`
	EmployeePhone      string `gorm:"column:employee_phone;type:varchar(20);not null;default:''" json:"employee_phone"`

	EmployeeDateOfBirth time.Time `gorm:"column:employee_date_of_birth;type:date;not null" json:"employee_date_of_birth"`

	EmployeeFatherName  string `gorm:"column:employee_father_name;type:varchar(120);not null;default:''" json:"employee_father_name"`
	EmployeeMotherName  string `gorm:"column:employee_mother_name;type:varchar(120);not null;default:''" json:"employee_mother_name"`
	EmployeeFatherPhone string `gorm:"column:employee_father_phone;type:varchar(20);not null;default:''" json:"employee_father_phone"`
	EmployeeMotherPhone string `gorm:"column:employee_mother_phone;type:varchar(20);not null;default:''" json:"employee_mother_phone"`

	EmployeeIdentityDocs datatypes.JSON `gorm:"column:employee_identity_docs;type:jsonb" json:"employee_identity_docs,omitempty"`

	EmployeeWorkRole string  `gorm:"column:employee_work_role;type:varchar(60);not null" json:"employee_work_role"`
	EmployeeSalary   float64 `gorm:"column:employee_salary;not null;default:0;check:employee_salary>=0" json:"employee_salary"`

	EmployeeIsActive bool `gorm:"column:employee_is_active;not null;index:ix_employee_is_active" json:"employee_is_active"`
	EmployeeIsFired  bool `gorm:"column:employee_is_fired;not null;default:false" json:"employee_is_fired"`

	EmployeeProfileImage []byte `gorm:"column:employee_profile_image" json:"-"`

	EmployeeCreatedAt time.Time `gorm:"column:employee_created_at;not null" json:"employee_created_at"`
	EmployeeUpdatedAt time.Time `gorm:"column:employee_updated_at;not null" json:"employee_updated_at"`

	// Role links (preload bila perlu)
	Admin   *AdminModel   `gorm:"foreignKey:AdminEmployeeID;references:EmployeeID" json:"admin,omitempty"`
	Teacher *TeacherModel `gorm:"foreignKey:TeacherEmployeeID;references:EmployeeID" json:"teacher,omitempty"`
	Driver  *DriverModel  `gorm:"foreignKey:DriverEmployeeID;references:EmployeeID" json:"driver,omitempty"`
}

func (EmployeeModel) TableName() string { return "employees" }

/* ================= HOOKS ================= */

func (m *EmployeeModel) BeforeCreate(tx *gorm.DB) error {
	if m.EmployeeID == uuid.Nil {
		m.EmployeeID = uuid.New()
	}
	now := time.Now()
	if m.EmployeeCreatedAt.IsZero() {
		m.EmployeeCreatedAt = now
	}
	m.EmployeeUpdatedAt = now
	return nil
}

func (m *EmployeeModel) BeforeUpdate(tx *gorm.DB) error {
	m.EmployeeUpdatedAt = time.Now()
	return nil
}
