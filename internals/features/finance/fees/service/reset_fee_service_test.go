package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	feeModel "sekolahku_backend/internals/features/finance/fees/model"
)

func TestResetEnrollmentFeesClearsHistory(t *testing.T) {
	db := newTestDB(t)
	st := seedStudent(t, db, true)
	enr := seedEnrollment(t, db, st.StudentID, true, false)
	seedEntries(t, db, enr.EnrollmentID, []float64{100, 100, 100})

	if _, err := PayFee(db, st.StudentID, enr.EnrollmentID, 150, nil); err != nil {
		t.Fatalf("PayFee: %v", err)
	}
	if _, err := PayFee(db, st.StudentID, enr.EnrollmentID, 50, nil); err != nil {
		t.Fatalf("PayFee: %v", err)
	}

	res, err := ResetEnrollmentFees(db, st.StudentID, enr.EnrollmentID, nil)
	if err != nil {
		t.Fatalf("ResetEnrollmentFees: %v", err)
	}
	if res.ReceiptsDeleted != 2 {
		t.Errorf("receipts_deleted = %d, want 2", res.ReceiptsDeleted)
	}

	entries := reloadEntries(t, db, enr.EnrollmentID)
	for i, e := range entries {
		if e.MonthlyFeePaid != 0 {
			t.Errorf("entry %d paid = %v, want 0", i, e.MonthlyFeePaid)
		}
		if e.MonthlyFeeBalance != e.MonthlyFeeDue {
			t.Errorf("entry %d balance = %v, want fee_due %v", i, e.MonthlyFeeBalance, e.MonthlyFeeDue)
		}
		if e.MonthlyFeePaidDate != nil {
			t.Errorf("entry %d paid_date = %v, want nil", i, e.MonthlyFeePaidDate)
		}
	}

	var receipts int64
	db.Model(&feeModel.FeePaymentModel{}).
		Where("fee_payment_enrollment_id = ?", enr.EnrollmentID).Count(&receipts)
	if receipts != 0 {
		t.Errorf("receipts = %d, want 0", receipts)
	}
}

func TestResetEnrollmentFeesOverrideAmount(t *testing.T) {
	db := newTestDB(t)
	st := seedStudent(t, db, true)
	enr := seedEnrollment(t, db, st.StudentID, true, false)
	seedEntries(t, db, enr.EnrollmentID, []float64{100, 100})

	override := 250.0
	res, err := ResetEnrollmentFees(db, st.StudentID, enr.EnrollmentID, &override)
	if err != nil {
		t.Fatalf("ResetEnrollmentFees: %v", err)
	}
	for i, e := range res.Entries {
		if e.MonthlyFeeDue != 250 || e.MonthlyFeeBalance != 250 {
			t.Errorf("entry %d due/balance = %v/%v, want 250/250", i, e.MonthlyFeeDue, e.MonthlyFeeBalance)
		}
	}
}

func TestResetEnrollmentFeesGuards(t *testing.T) {
	db := newTestDB(t)
	st := seedStudent(t, db, true)
	other := seedStudent(t, db, true)

	inactive := seedEnrollment(t, db, st.StudentID, false, false)
	completed := seedEnrollment(t, db, st.StudentID, true, true)
	open := seedEnrollment(t, db, st.StudentID, true, false)
	seedEntries(t, db, open.EnrollmentID, []float64{100})

	tests := []struct {
		name         string
		studentID    uuid.UUID
		enrollmentID uuid.UUID
		wantStatus   int
	}{
		{"enrollment tidak ada", st.StudentID, uuid.New(), fiber.StatusNotFound},
		{"bukan milik siswa", other.StudentID, open.EnrollmentID, fiber.StatusForbidden},
		{"enrollment complete", st.StudentID, completed.EnrollmentID, fiber.StatusConflict},
		{"enrollment nonaktif", st.StudentID, inactive.EnrollmentID, fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResetEnrollmentFees(db, tt.studentID, tt.enrollmentID, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := fiberStatus(t, err); got != tt.wantStatus {
				t.Errorf("status = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}
