package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL — payment_orders
// Order checkout Midtrans untuk pembayaran SPP online.
// Alokasi ke ledger baru terjadi saat webhook settlement.
// =========================================================

type PaymentOrderModel struct {
	PaymentOrderID uuid.UUID `gorm:"column:payment_order_id;type:uuid;primaryKey" json:"payment_order_id"`

	// Order ID yang dikirim ke Midtrans (unik)
	PaymentOrderCode string `gorm:"column:payment_order_code;type:varchar(64);not null;uniqueIndex:uq_payment_order_code" json:"payment_order_code"`

	PaymentOrderStudentID    uuid.UUID `gorm:"column:payment_order_student_id;type:uuid;not null;index:ix_payment_order_student" json:"payment_order_student_id"`
	PaymentOrderEnrollmentID uuid.UUID `gorm:"column:payment_order_enrollment_id;type:uuid;not null;index:ix_payment_order_enrollment" json:"payment_order_enrollment_id"`

	PaymentOrderAmount float64 `gorm:"column:payment_order_amount;not null;check:payment_order_amount>0" json:"payment_order_amount"`

	// pending | paid | expired | canceled | failed
	PaymentOrderStatus string `gorm:"column:payment_order_status;type:varchar(20);not null;default:'pending';index:ix_payment_order_status" json:"payment_order_status"`

	PaymentOrderSnapToken string     `gorm:"column:payment_order_snap_token;type:varchar(120);not null;default:''" json:"payment_order_snap_token,omitempty"`
	PaymentOrderPaidAt    *time.Time `gorm:"column:payment_order_paid_at" json:"payment_order_paid_at,omitempty"`

	// Diisi saat settlement berhasil dialokasikan
	PaymentOrderReceiptID *uuid.UUID `gorm:"column:payment_order_receipt_id;type:uuid" json:"payment_order_receipt_id,omitempty"`

	PaymentOrderCreatedAt time.Time `gorm:"column:payment_order_created_at;not null" json:"payment_order_created_at"`
	PaymentOrderUpdatedAt time.Time `gorm:"column:payment_order_updated_at;not null" json:"payment_order_updated_at"`
}

func (PaymentOrderModel) TableName() string { return "payment_orders" }

func (m *PaymentOrderModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentOrderID == uuid.Nil {
		m.PaymentOrderID = uuid.New()
	}
	now := time.Now()
	if m.PaymentOrderCreatedAt.IsZero() {
		m.PaymentOrderCreatedAt = now
	}
	m.PaymentOrderUpdatedAt = now
	return nil
}

func (m *PaymentOrderModel) BeforeUpdate(tx *gorm.DB) error {
	m.PaymentOrderUpdatedAt = time.Now()
	return nil
}
