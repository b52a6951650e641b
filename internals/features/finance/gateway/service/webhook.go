package service

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	feeService "sekolahku_backend/internals/features/finance/fees/service"
	model "sekolahku_backend/internals/features/finance/gateway/model"
	helper "sekolahku_backend/internals/helpers"
)

// HandleFeeStatusWebhook dipanggil saat menerima notifikasi dari Midtrans.
// Settlement memicu alokasi PayFee. Baris order dikunci FOR UPDATE di
// dalam satu transaksi: dua notifikasi identik yang datang bersamaan
// terserialisasi, yang kedua melihat status final dan diabaikan.
func HandleFeeStatusWebhook(db *gorm.DB, body map[string]interface{}) error {
	orderCode, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)
	if !ok1 || !ok2 {
		log.Println("[ERROR] Payload webhook tidak lengkap:", body)
		return fmt.Errorf("invalid payload")
	}

	log.Println("📄 Order ID:", orderCode)
	log.Println("📌 Transaction Status:", status)

	var allocErr error
	err := db.Transaction(func(tx *gorm.DB) error {
		var order model.PaymentOrderModel
		if err := helper.LockUpdate(tx).
			First(&order, "payment_order_code = ?", orderCode).Error; err != nil {
			log.Println("[ERROR] Order tidak ditemukan:", err)
			return fmt.Errorf("payment order %s not found", orderCode)
		}

		// Sudah final: abaikan notifikasi ulang.
		if order.PaymentOrderStatus != "pending" {
			log.Println("[INFO] Order sudah final, notifikasi diabaikan:", order.PaymentOrderStatus)
			return nil
		}

		switch status {
		case "capture", "settlement":
			result, err := feeService.PayFee(tx,
				order.PaymentOrderStudentID,
				order.PaymentOrderEnrollmentID,
				order.PaymentOrderAmount, nil)
			if err != nil {
				// Alokasi gagal (overpayment / enrollment berubah state):
				// tandai failed supaya notifikasi berikutnya tidak retry.
				order.PaymentOrderStatus = "failed"
				if saveErr := tx.Save(&order).Error; saveErr != nil {
					return saveErr
				}
				log.Println("❌ Alokasi webhook gagal:", err)
				allocErr = err
				return nil
			}
			now := time.Now()
			order.PaymentOrderStatus = "paid"
			order.PaymentOrderPaidAt = &now
			order.PaymentOrderReceiptID = &result.Receipt.FeePaymentID
		case "expire":
			order.PaymentOrderStatus = "expired"
		case "cancel", "deny":
			order.PaymentOrderStatus = "canceled"
		default:
			log.Println("[INFO] Status tidak diproses:", status)
			return nil
		}

		return tx.Save(&order).Error
	})
	if err != nil {
		log.Println("[ERROR] Gagal memproses webhook:", err)
		return err
	}
	return allocErr
}
