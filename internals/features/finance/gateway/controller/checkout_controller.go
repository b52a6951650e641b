// internals/features/finance/gateway/controller/checkout_controller.go
package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "sekolahku_backend/internals/features/finance/gateway/model"
	"sekolahku_backend/internals/features/finance/gateway/service"
	studentModel "sekolahku_backend/internals/features/people/students/model"
	enrollmentModel "sekolahku_backend/internals/features/school/enrollments/model"
	helper "sekolahku_backend/internals/helpers"
)

type CheckoutController struct {
	DB *gorm.DB
}

type createCheckoutRequest struct {
	StudentID    uuid.UUID `json:"student_id" validate:"required"`
	EnrollmentID uuid.UUID `json:"enrollment_id" validate:"required"`
	Amount       float64   `json:"amount" validate:"required,gt=0"`
}

// =======================================================
// CHECKOUT — buat order + snap token
// Validasi state dilakukan di sini supaya orang tua tidak
// membayar enrollment yang sudah complete; alokasi final
// tetap divalidasi ulang oleh PayFee saat settlement.
// =======================================================

func (ctl *CheckoutController) CreateCheckout(c *fiber.Ctx) error {
	var req createCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var st studentModel.StudentModel
	if err := ctl.DB.Select("student_id", "student_name", "student_is_active").
		First(&st, "student_id = ?", req.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil siswa")
	}
	if !st.StudentIsActive {
		return helper.JsonError(c, fiber.StatusBadRequest, "Siswa sudah tidak aktif")
	}

	var enr enrollmentModel.EnrollmentModel
	if err := ctl.DB.First(&enr, "enrollment_id = ?", req.EnrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Enrollment tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil enrollment")
	}
	if enr.EnrollmentStudentID != req.StudentID {
		return helper.JsonError(c, fiber.StatusForbidden, "Enrollment bukan milik siswa ini")
	}
	if enr.EnrollmentIsComplete {
		return helper.JsonError(c, fiber.StatusConflict, "Enrollment sudah complete dan diarsipkan")
	}

	order := model.PaymentOrderModel{
		PaymentOrderCode:         fmt.Sprintf("SPP-%d-%s", time.Now().Unix(), uuid.NewString()[:8]),
		PaymentOrderStudentID:    req.StudentID,
		PaymentOrderEnrollmentID: req.EnrollmentID,
		PaymentOrderAmount:       req.Amount,
		PaymentOrderStatus:       "pending",
	}

	token, err := service.GenerateSnapToken(order, st.StudentName)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal membuat transaksi Midtrans")
	}
	order.PaymentOrderSnapToken = token

	if err := ctl.DB.Create(&order).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan order")
	}

	return helper.JsonCreated(c, "Order checkout berhasil dibuat", fiber.Map{
		"order":      order,
		"snap_token": token,
	})
}

// =======================================================
// WEBHOOK — notifikasi status dari Midtrans
// =======================================================

func (ctl *CheckoutController) HandleNotification(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload notifikasi tidak valid")
	}

	if err := service.HandleFeeStatusWebhook(ctl.DB, body); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "Notifikasi diproses", nil)
}

// =======================================================
// ORDERS — daftar order per siswa
// =======================================================

func (ctl *CheckoutController) GetStudentOrders(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	var orders []model.PaymentOrderModel
	if err := ctl.DB.Where("payment_order_student_id = ?", studentID).
		Order("payment_order_created_at DESC").
		Find(&orders).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar order")
	}
	return helper.JsonOK(c, "OK", orders)
}
