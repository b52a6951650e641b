package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL — student_monthly_fees
// Satu baris per periode tagihan per enrollment.
//
// Invariant:
//   - monthly_fee_balance >= 0
//   - monthly_fee_paid_date terisi ⇔ balance == 0
//   - unik per (enrollment, due_date)
// =========================================================

type MonthlyFeeModel struct {
	MonthlyFeeID uuid.UUID `gorm:"column:monthly_fee_id;type:uuid;primaryKey" json:"monthly_fee_id"`

	// FK → student_enrollments
	MonthlyFeeEnrollmentID uuid.UUID `gorm:"column:monthly_fee_enrollment_id;type:uuid;not null;index:ix_monthly_fee_enrollment;uniqueIndex:uq_monthly_fee_enrollment_due,priority:1" json:"monthly_fee_enrollment_id"`

	// Periode tagihan — selalu tanggal 1
	MonthlyFeeDueDate time.Time `gorm:"column:monthly_fee_due_date;type:date;not null;uniqueIndex:uq_monthly_fee_enrollment_due,priority:2" json:"monthly_fee_due_date"`

	MonthlyFeeDue     float64 `gorm:"column:monthly_fee_due;not null;default:0;check:monthly_fee_due>=0" json:"monthly_fee_due"`
	MonthlyFeePaid    float64 `gorm:"column:monthly_fee_paid;not null;default:0" json:"monthly_fee_paid"`
	MonthlyFeeBalance float64 `gorm:"column:monthly_fee_balance;not null;default:0;check:monthly_fee_balance>=0" json:"monthly_fee_balance"`

	// Hanya terisi saat lunas
	MonthlyFeePaidDate *time.Time `gorm:"column:monthly_fee_paid_date;type:date" json:"monthly_fee_paid_date,omitempty"`

	MonthlyFeeCreatedAt time.Time `gorm:"column:monthly_fee_created_at;not null" json:"monthly_fee_created_at"`
	MonthlyFeeUpdatedAt time.Time `gorm:"column:monthly_fee_updated_at;not null" json:"monthly_fee_updated_at"`
}

func (MonthlyFeeModel) TableName() string { return "student_monthly_fees" }

/* ================= HOOKS ================= */

func (m *MonthlyFeeModel) BeforeCreate(tx *gorm.DB) error {
	if m.MonthlyFeeID == uuid.Nil {
		m.MonthlyFeeID = uuid.New()
	}
	now := time.Now()
	if m.MonthlyFeeCreatedAt.IsZero() {
		m.MonthlyFeeCreatedAt = now
	}
	m.MonthlyFeeUpdatedAt = now
	return nil
}

func (m *MonthlyFeeModel) BeforeUpdate(tx *gorm.DB) error {
	m.MonthlyFeeUpdatedAt = time.Now()
	return nil
}
