package service

import (
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	model "sekolahku_backend/internals/features/finance/gateway/model"
)

var SnapClient snap.Client

// InitMidtrans menginisialisasi Midtrans Snap Client dengan server key.
func InitMidtrans(serverKey string) {
	SnapClient.New(serverKey, midtrans.Sandbox)
}

// GenerateSnapToken membuat token Snap Midtrans untuk satu order SPP.
func GenerateSnapToken(order model.PaymentOrderModel, studentName string) (string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.PaymentOrderCode,
			GrossAmt: int64(order.PaymentOrderAmount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: studentName,
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}
