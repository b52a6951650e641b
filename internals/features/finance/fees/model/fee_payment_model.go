package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL — fee_payments
// Kwitansi pembayaran: append-only, tidak pernah di-update.
// original_balance  = Σ max(balance,0) SEBELUM alokasi
// remaining_balance = Σ balance SESUDAH alokasi
// =========================================================

type FeePaymentModel struct {
	FeePaymentID uuid.UUID `gorm:"column:fee_payment_id;type:uuid;primaryKey" json:"fee_payment_id"`

	FeePaymentStudentID    uuid.UUID `gorm:"column:fee_payment_student_id;type:uuid;not null;index:ix_fee_payment_student" json:"fee_payment_student_id"`
	FeePaymentEnrollmentID uuid.UUID `gorm:"column:fee_payment_enrollment_id;type:uuid;not null;index:ix_fee_payment_enrollment" json:"fee_payment_enrollment_id"`

	FeePaymentPaidAmount float64 `gorm:"column:fee_payment_paid_amount;not null;check:fee_payment_paid_amount>0" json:"fee_payment_paid_amount"`

	// Timestamp pencatatan kwitansi (audit), BUKAN tanggal efektif
	// pembayaran per-entry — lihat catatan di service allocator.
	FeePaymentPaidOn time.Time `gorm:"column:fee_payment_paid_on;not null;index:ix_fee_payment_paid_on" json:"fee_payment_paid_on"`

	FeePaymentOriginalBalance  float64 `gorm:"column:fee_payment_original_balance;not null" json:"fee_payment_original_balance"`
	FeePaymentRemainingBalance float64 `gorm:"column:fee_payment_remaining_balance;not null" json:"fee_payment_remaining_balance"`

	FeePaymentCreatedAt time.Time `gorm:"column:fee_payment_created_at;not null" json:"fee_payment_created_at"`
}

func (FeePaymentModel) TableName() string { return "fee_payments" }

func (m *FeePaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.FeePaymentID == uuid.Nil {
		m.FeePaymentID = uuid.New()
	}
	if m.FeePaymentCreatedAt.IsZero() {
		m.FeePaymentCreatedAt = time.Now()
	}
	return nil
}
