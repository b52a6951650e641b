package service

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	feeModel "sekolahku_backend/internals/features/finance/fees/model"
)

func TestGenerateSchedule(t *testing.T) {
	db := newTestDB(t)
	st := seedStudent(t, db, true)
	enr := seedEnrollment(t, db, st.StudentID, true, false)

	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC) // dinormalkan ke 1 Jan
	end := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	entries, err := GenerateSchedule(db, enr.EnrollmentID, start, end, 150)
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}
	if len(entries) != 6 {
		t.Fatalf("entries = %d, want 6 (Jan..Jun)", len(entries))
	}
	for i, e := range entries {
		wantDue := time.Date(2025, time.Month(1+i), 1, 0, 0, 0, 0, time.UTC)
		if !e.MonthlyFeeDueDate.Equal(wantDue) {
			t.Errorf("entry %d due_date = %v, want %v", i, e.MonthlyFeeDueDate, wantDue)
		}
		if e.MonthlyFeeDue != 150 || e.MonthlyFeeBalance != 150 || e.MonthlyFeePaid != 0 {
			t.Errorf("entry %d due/balance/paid = %v/%v/%v, want 150/150/0",
				i, e.MonthlyFeeDue, e.MonthlyFeeBalance, e.MonthlyFeePaid)
		}
	}
}

func TestGenerateScheduleEmptyInterval(t *testing.T) {
	db := newTestDB(t)
	st := seedStudent(t, db, true)
	enr := seedEnrollment(t, db, st.StudentID, true, false)

	d := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if _, err := GenerateSchedule(db, enr.EnrollmentID, d, d, 150); err == nil {
		t.Fatal("expected error for empty interval")
	}
}

// Pemanggilan ulang generator tidak boleh menggandakan entri maupun
// menyentuh entri yang sudah terbayar.
func TestRegenerateScheduleIdempotent(t *testing.T) {
	db := newTestDB(t)
	st := seedStudent(t, db, true)
	enr := seedEnrollment(t, db, st.StudentID, true, false) // sesi Jan..Jun 2025, fee 100

	// Jadwal baru terisi Jan..Mar; Jan sudah dibayar sebagian.
	seedEntries(t, db, enr.EnrollmentID, []float64{100, 100, 100})
	if err := db.Model(&feeModel.MonthlyFeeModel{}).
		Where("monthly_fee_enrollment_id = ? AND monthly_fee_due_date = ?",
			enr.EnrollmentID, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)).
		Updates(map[string]interface{}{
			"monthly_fee_paid":    40.0,
			"monthly_fee_balance": 60.0,
		}).Error; err != nil {
		t.Fatalf("mark partial payment: %v", err)
	}

	created, err := RegenerateSchedule(db, st.StudentID, enr.EnrollmentID)
	if err != nil {
		t.Fatalf("RegenerateSchedule: %v", err)
	}
	if created != 3 {
		t.Errorf("created = %d, want 3 (Apr..Jun)", created)
	}

	entries := reloadEntries(t, db, enr.EnrollmentID)
	if len(entries) != 6 {
		t.Fatalf("entries = %d, want 6", len(entries))
	}
	if entries[0].MonthlyFeePaid != 40 || entries[0].MonthlyFeeBalance != 60 {
		t.Errorf("entri Januari paid/balance = %v/%v, entri lama tidak boleh tersentuh",
			entries[0].MonthlyFeePaid, entries[0].MonthlyFeeBalance)
	}

	// Panggilan kedua: tidak ada yang baru.
	created, err = RegenerateSchedule(db, st.StudentID, enr.EnrollmentID)
	if err != nil {
		t.Fatalf("RegenerateSchedule kedua: %v", err)
	}
	if created != 0 {
		t.Errorf("created pada panggilan kedua = %d, want 0", created)
	}
	if entries := reloadEntries(t, db, enr.EnrollmentID); len(entries) != 6 {
		t.Errorf("entries setelah panggilan kedua = %d, want 6", len(entries))
	}
}

func TestRegenerateScheduleGuards(t *testing.T) {
	db := newTestDB(t)
	st := seedStudent(t, db, true)
	completed := seedEnrollment(t, db, st.StudentID, true, true)
	open := seedEnrollment(t, db, st.StudentID, true, false)

	if _, err := RegenerateSchedule(db, st.StudentID, uuid.New()); err == nil {
		t.Error("expected error for unknown enrollment")
	} else if got := fiberStatus(t, err); got != fiber.StatusNotFound {
		t.Errorf("unknown enrollment: status = %d, want 404", got)
	}

	if _, err := RegenerateSchedule(db, uuid.New(), open.EnrollmentID); err == nil {
		t.Error("expected error for foreign student")
	} else if got := fiberStatus(t, err); got != fiber.StatusForbidden {
		t.Errorf("foreign student: status = %d, want 403", got)
	}

	if _, err := RegenerateSchedule(db, st.StudentID, completed.EnrollmentID); err == nil {
		t.Error("expected error for completed enrollment")
	} else if got := fiberStatus(t, err); got != fiber.StatusConflict {
		t.Errorf("completed enrollment: status = %d, want 409", got)
	}
}
