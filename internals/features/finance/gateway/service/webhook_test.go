package service

import (
	"testing"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/glebarez/sqlite"

	feeModel "sekolahku_backend/internals/features/finance/fees/model"
	model "sekolahku_backend/internals/features/finance/gateway/model"
	studentModel "sekolahku_backend/internals/features/people/students/model"
	enrollmentModel "sekolahku_backend/internals/features/school/enrollments/model"
)

func newWebhookDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&studentModel.StudentModel{},
		&enrollmentModel.EnrollmentModel{},
		&feeModel.MonthlyFeeModel{},
		&feeModel.FeePaymentModel{},
		&model.PaymentOrderModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedOrder menyiapkan siswa aktif + enrollment aktif dengan dua
// tagihan 100, lalu order pending sebesar amount.
func seedOrder(t *testing.T, db *gorm.DB, code string, amount float64) model.PaymentOrderModel {
	t.Helper()
	st := studentModel.StudentModel{
		StudentName:        "Dewi Lestari",
		StudentSearchName:  "dewi lestari",
		StudentDateOfBirth: time.Date(2011, 9, 3, 0, 0, 0, 0, time.UTC),
		StudentIsActive:    true,
	}
	if err := db.Create(&st).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	enr := enrollmentModel.EnrollmentModel{
		EnrollmentStudentID:    st.StudentID,
		EnrollmentClassroomID:  st.StudentID,
		EnrollmentSectionID:    st.StudentID,
		EnrollmentSessionStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EnrollmentSessionEnd:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EnrollmentMonthlyFee:   100,
		EnrollmentIsActive:     true,
	}
	if err := db.Create(&enr).Error; err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
	for i := 0; i < 2; i++ {
		fee := feeModel.MonthlyFeeModel{
			MonthlyFeeEnrollmentID: enr.EnrollmentID,
			MonthlyFeeDueDate:      time.Date(2025, time.Month(1+i), 1, 0, 0, 0, 0, time.UTC),
			MonthlyFeeDue:          100,
			MonthlyFeeBalance:      100,
		}
		if err := db.Create(&fee).Error; err != nil {
			t.Fatalf("seed fee entry: %v", err)
		}
	}
	order := model.PaymentOrderModel{
		PaymentOrderCode:         code,
		PaymentOrderStudentID:    st.StudentID,
		PaymentOrderEnrollmentID: enr.EnrollmentID,
		PaymentOrderAmount:       amount,
		PaymentOrderStatus:       "pending",
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func webhookBody(code, status string) map[string]interface{} {
	return map[string]interface{}{
		"order_id":           code,
		"transaction_status": status,
	}
}

// Notifikasi settlement yang sama datang dua kali; alokasi hanya
// boleh terjadi sekali.
func TestWebhookSettlementIdempotent(t *testing.T) {
	db := newWebhookDB(t)
	order := seedOrder(t, db, "SPP-0001", 150)

	if err := HandleFeeStatusWebhook(db, webhookBody("SPP-0001", "settlement")); err != nil {
		t.Fatalf("webhook pertama: %v", err)
	}
	if err := HandleFeeStatusWebhook(db, webhookBody("SPP-0001", "settlement")); err != nil {
		t.Fatalf("webhook kedua: %v", err)
	}

	var re model.PaymentOrderModel
	if err := db.First(&re, "payment_order_id = ?", order.PaymentOrderID).Error; err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if re.PaymentOrderStatus != "paid" {
		t.Errorf("status = %q, want paid", re.PaymentOrderStatus)
	}
	if re.PaymentOrderPaidAt == nil || re.PaymentOrderReceiptID == nil {
		t.Error("paid_at / receipt_id kosong setelah settlement")
	}

	var receipts int64
	db.Model(&feeModel.FeePaymentModel{}).
		Where("fee_payment_enrollment_id = ?", order.PaymentOrderEnrollmentID).
		Count(&receipts)
	if receipts != 1 {
		t.Errorf("receipts = %d, want 1 (notifikasi ganda tidak boleh alokasi ulang)", receipts)
	}

	var paid float64
	db.Model(&feeModel.MonthlyFeeModel{}).
		Where("monthly_fee_enrollment_id = ?", order.PaymentOrderEnrollmentID).
		Select("COALESCE(SUM(monthly_fee_paid), 0)").Scan(&paid)
	if paid != 150 {
		t.Errorf("total paid = %v, want 150", paid)
	}
}

func TestWebhookExpireAndCancel(t *testing.T) {
	db := newWebhookDB(t)
	expire := seedOrder(t, db, "SPP-0002", 100)
	cancel := seedOrder(t, db, "SPP-0003", 100)

	if err := HandleFeeStatusWebhook(db, webhookBody("SPP-0002", "expire")); err != nil {
		t.Fatalf("expire: %v", err)
	}
	if err := HandleFeeStatusWebhook(db, webhookBody("SPP-0003", "cancel")); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	var re model.PaymentOrderModel
	db.First(&re, "payment_order_id = ?", expire.PaymentOrderID)
	if re.PaymentOrderStatus != "expired" {
		t.Errorf("expire status = %q, want expired", re.PaymentOrderStatus)
	}
	var rc model.PaymentOrderModel
	db.First(&rc, "payment_order_id = ?", cancel.PaymentOrderID)
	if rc.PaymentOrderStatus != "canceled" {
		t.Errorf("cancel status = %q, want canceled", rc.PaymentOrderStatus)
	}

	// Settlement terlambat pada order yang sudah expired: diabaikan.
	if err := HandleFeeStatusWebhook(db, webhookBody("SPP-0002", "settlement")); err != nil {
		t.Fatalf("settlement setelah expired: %v", err)
	}
	var receipts int64
	db.Model(&feeModel.FeePaymentModel{}).Count(&receipts)
	if receipts != 0 {
		t.Errorf("receipts = %d, want 0", receipts)
	}
}

// Alokasi gagal (order melebihi sisa tagihan): order ditandai failed
// dan tidak di-retry oleh notifikasi berikutnya.
func TestWebhookAllocationFailureMarksFailed(t *testing.T) {
	db := newWebhookDB(t)
	order := seedOrder(t, db, "SPP-0004", 500) // outstanding hanya 200

	if err := HandleFeeStatusWebhook(db, webhookBody("SPP-0004", "settlement")); err == nil {
		t.Fatal("expected allocation error for overpayment")
	}

	var re model.PaymentOrderModel
	if err := db.First(&re, "payment_order_id = ?", order.PaymentOrderID).Error; err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if re.PaymentOrderStatus != "failed" {
		t.Errorf("status = %q, want failed", re.PaymentOrderStatus)
	}

	var receipts int64
	db.Model(&feeModel.FeePaymentModel{}).Count(&receipts)
	if receipts != 0 {
		t.Errorf("receipts = %d, want 0", receipts)
	}
	var paid float64
	db.Model(&feeModel.MonthlyFeeModel{}).
		Select("COALESCE(SUM(monthly_fee_paid), 0)").Scan(&paid)
	if paid != 0 {
		t.Errorf("total paid = %v, want 0 (alokasi parsial harus rollback)", paid)
	}

	// Notifikasi ulang pada order failed: tidak ada efek.
	if err := HandleFeeStatusWebhook(db, webhookBody("SPP-0004", "settlement")); err != nil {
		t.Fatalf("notifikasi ulang: %v", err)
	}
	db.Model(&feeModel.FeePaymentModel{}).Count(&receipts)
	if receipts != 0 {
		t.Errorf("receipts setelah retry = %d, want 0", receipts)
	}
}

func TestWebhookUnknownOrder(t *testing.T) {
	db := newWebhookDB(t)
	if err := HandleFeeStatusWebhook(db, webhookBody("SPP-9999", "settlement")); err == nil {
		t.Fatal("expected error for unknown order")
	}
}
