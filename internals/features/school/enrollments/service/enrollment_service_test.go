package service

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/glebarez/sqlite"

	feeModel "sekolahku_backend/internals/features/finance/fees/model"
	feeService "sekolahku_backend/internals/features/finance/fees/service"
	studentModel "sekolahku_backend/internals/features/people/students/model"
	classModel "sekolahku_backend/internals/features/school/classrooms/model"
	enrollmentModel "sekolahku_backend/internals/features/school/enrollments/model"
)

func newTestDB(t *testing.T) *gorm.DB {
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
		&classModel.ClassroomModel{},
		&classModel.ClassSectionModel{},
		&enrollmentModel.EnrollmentModel{},
		&enrollmentModel.ExamEntryModel{},
		&feeModel.MonthlyFeeModel{},
		&feeModel.FeePaymentModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, active bool) studentModel.StudentModel {
	t.Helper()
	st := studentModel.StudentModel{
		StudentName:        "Priya Patel",
		StudentSearchName:  "priya patel",
		StudentDateOfBirth: time.Date(2013, 8, 2, 0, 0, 0, 0, time.UTC),
		StudentIsActive:    active,
	}
	if err := db.Create(&st).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	return st
}

func seedSection(t *testing.T, db *gorm.DB, active bool, defaultFee float64) classModel.ClassSectionModel {
	t.Helper()
	room := classModel.ClassroomModel{
		ClassroomName:       "CLASS " + uuid.NewString()[:8],
		ClassroomIsActive:   true,
		ClassroomDefaultFee: defaultFee,
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("seed classroom: %v", err)
	}
	sec := classModel.ClassSectionModel{
		SectionClassroomID: room.ClassroomID,
		SectionName:        "A",
		SectionIsActive:    active,
		SectionDefaultFee:  defaultFee,
	}
	if err := db.Create(&sec).Error; err != nil {
		t.Fatalf("seed section: %v", err)
	}
	return sec
}

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func fiberStatus(t *testing.T, err error) int {
	t.Helper()
	fe, ok := err.(*fiber.Error)
	if !ok {
		t.Fatalf("expected *fiber.Error, got %T: %v", err, err)
	}
	return fe.Code
}

// Flag nonaktif harus tersimpan apa adanya; insert tidak boleh
// diam-diam mengembalikan nilai ke true.
func TestInactiveFlagsPersist(t *testing.T) {
	db := newTestDB(t)
	st := seedStudent(t, db, false)
	sec := seedSection(t, db, false, 100)

	var reSt studentModel.StudentModel
	if err := db.First(&reSt, "student_id = ?", st.StudentID).Error; err != nil {
		t.Fatalf("reload student: %v", err)
	}
	if reSt.StudentIsActive {
		t.Error("student_is_active = true setelah reload, want false")
	}

	var reSec classModel.ClassSectionModel
	if err := db.First(&reSec, "section_id = ?", sec.SectionID).Error; err != nil {
		t.Fatalf("reload section: %v", err)
	}
	if reSec.SectionIsActive {
		t.Error("section_is_active = true setelah reload, want false")
	}

	enr := enrollmentModel.EnrollmentModel{
		EnrollmentStudentID:    st.StudentID,
		EnrollmentClassroomID:  uuid.New(),
		EnrollmentSectionID:    sec.SectionID,
		EnrollmentSessionStart: month(2025, time.January),
		EnrollmentSessionEnd:   month(2025, time.July),
		EnrollmentIsActive:     false,
	}
	if err := db.Create(&enr).Error; err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
	var reEnr enrollmentModel.EnrollmentModel
	if err := db.First(&reEnr, "enrollment_id = ?", enr.EnrollmentID).Error; err != nil {
		t.Fatalf("reload enrollment: %v", err)
	}
	if reEnr.EnrollmentIsActive {
		t.Error("enrollment_is_active = true setelah reload, want false")
	}
}

func TestCreateEnrollmentGeneratesSchedule(t *testing.T) {
	db := newTestDB(t)
	st := seedStudent(t, db, true)
	sec := seedSection(t, db, true, 200)

	res, err := CreateEnrollment(db, CreateEnrollmentInput{
		StudentID:    st.StudentID,
		SectionID:    sec.SectionID,
		SessionStart: month(2025, time.January),
		SessionEnd:   month(2025, time.July),
	})
	if err != nil {
		t.Fatalf("CreateEnrollment: %v", err)
	}

	if res.Enrollment.EnrollmentMonthlyFee != 200 {
		t.Errorf("monthly_fee snapshot = %v, want 200 (section default)", res.Enrollment.EnrollmentMonthlyFee)
	}
	if res.Enrollment.EnrollmentClassroomID != sec.SectionClassroomID {
		t.Errorf("classroom_id = %v, want %v", res.Enrollment.EnrollmentClassroomID, sec.SectionClassroomID)
	}
	if len(res.Fees) != 6 {
		t.Fatalf("fees = %d, want 6", len(res.Fees))
	}
	for i, f := range res.Fees {
		if f.MonthlyFeeDue != 200 || f.MonthlyFeeBalance != 200 {
			t.Errorf("fee %d due/balance = %v/%v, want 200/200", i, f.MonthlyFeeDue, f.MonthlyFeeBalance)
		}
	}
}

func TestCreateEnrollmentOverrideFee(t *testing.T) {
	db := newTestDB(t)
	st := seedStudent(t, db, true)
	sec := seedSection(t, db, true, 200)

	fee := 175.0
	oneTime := 500.0
	res, err := CreateEnrollment(db, CreateEnrollmentInput{
		StudentID:    st.StudentID,
		SectionID:    sec.SectionID,
		SessionStart: month(2025, time.January),
		SessionEnd:   month(2025, time.April),
		MonthlyFee:   &fee,
		OneTimeFee:   &oneTime,
	})
	if err != nil {
		t.Fatalf("CreateEnrollment: %v", err)
	}
	if res.Enrollment.EnrollmentMonthlyFee != 175 {
		t.Errorf("monthly_fee = %v, want override 175", res.Enrollment.EnrollmentMonthlyFee)
	}
	if res.Enrollment.EnrollmentOneTimeFee != 500 {
		t.Errorf("one_time_fee = %v, want 500", res.Enrollment.EnrollmentOneTimeFee)
	}
	if len(res.Fees) != 3 {
		t.Errorf("fees = %d, want 3", len(res.Fees))
	}
}

func TestCreateEnrollmentGuards(t *testing.T) {
	db := newTestDB(t)
	active := seedStudent(t, db, true)
	inactive := seedStudent(t, db, false)
	activeSec := seedSection(t, db, true, 100)
	inactiveSec := seedSection(t, db, false, 100)

	tests := []struct {
		name       string
		studentID  uuid.UUID
		sectionID  uuid.UUID
		start, end time.Time
		wantStatus int
	}{
		{"siswa tidak ada", uuid.New(), activeSec.SectionID, month(2025, time.January), month(2025, time.July), fiber.StatusNotFound},
		{"siswa nonaktif", inactive.StudentID, activeSec.SectionID, month(2025, time.January), month(2025, time.July), fiber.StatusBadRequest},
		{"section tidak ada", active.StudentID, uuid.New(), month(2025, time.January), month(2025, time.July), fiber.StatusNotFound},
		{"section nonaktif", active.StudentID, inactiveSec.SectionID, month(2025, time.January), month(2025, time.July), fiber.StatusBadRequest},
		{"interval kosong", active.StudentID, activeSec.SectionID, month(2025, time.July), month(2025, time.January), fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateEnrollment(db, CreateEnrollmentInput{
				StudentID:    tt.studentID,
				SectionID:    tt.sectionID,
				SessionStart: tt.start,
				SessionEnd:   tt.end,
			})
			if err == nil {
				t.Fatal("expected error")
			}
			if got := fiberStatus(t, err); got != tt.wantStatus {
				t.Errorf("status = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

// Sesi Jan..Jun (end eksklusif Jul). Enrollment baru Jun..Aug berbagi
// tepat satu bulan (Juni) dan ditoleransi; May..Aug berbagi dua bulan
// (Mei, Juni) dan ditolak.
func TestCreateEnrollmentOverlapBoundary(t *testing.T) {
	db := newTestDB(t)
	st := seedStudent(t, db, true)
	sec := seedSection(t, db, true, 100)

	if _, err := CreateEnrollment(db, CreateEnrollmentInput{
		StudentID:    st.StudentID,
		SectionID:    sec.SectionID,
		SessionStart: month(2025, time.January),
		SessionEnd:   month(2025, time.July),
	}); err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}

	// 1 bulan overlap: boleh.
	if _, err := CreateEnrollment(db, CreateEnrollmentInput{
		StudentID:    st.StudentID,
		SectionID:    sec.SectionID,
		SessionStart: month(2025, time.June),
		SessionEnd:   month(2025, time.September),
	}); err != nil {
		t.Fatalf("1-month overlap should be tolerated: %v", err)
	}

	// 2 bulan overlap: konflik.
	_, err := CreateEnrollment(db, CreateEnrollmentInput{
		StudentID:    st.StudentID,
		SectionID:    sec.SectionID,
		SessionStart: month(2026, time.May),
		SessionEnd:   month(2026, time.September),
	})
	if err != nil {
		t.Fatalf("disjoint session should pass: %v", err)
	}

	_, err = CreateEnrollment(db, CreateEnrollmentInput{
		StudentID:    st.StudentID,
		SectionID:    sec.SectionID,
		SessionStart: month(2025, time.May),
		SessionEnd:   month(2025, time.September),
	})
	if err == nil {
		t.Fatal("2-month overlap should be rejected")
	}
	if got := fiberStatus(t, err); got != fiber.StatusConflict {
		t.Errorf("status = %d, want 409", got)
	}
}

func TestUpdateEnrollmentLifecycle(t *testing.T) {
	db := newTestDB(t)
	st := seedStudent(t, db, true)
	sec := seedSection(t, db, true, 100)

	res, err := CreateEnrollment(db, CreateEnrollmentInput{
		StudentID:    st.StudentID,
		SectionID:    sec.SectionID,
		SessionStart: month(2025, time.January),
		SessionEnd:   month(2025, time.July),
	})
	if err != nil {
		t.Fatalf("CreateEnrollment: %v", err)
	}
	id := res.Enrollment.EnrollmentID

	f := false
	enr, err := UpdateEnrollment(db, st.StudentID, id, UpdateEnrollmentInput{IsActive: &f})
	if err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if enr.EnrollmentIsActive {
		t.Error("enrollment still active after suspend")
	}

	oneTime := 750.0
	enr, err = UpdateEnrollment(db, st.StudentID, id, UpdateEnrollmentInput{OneTimeFee: &oneTime})
	if err != nil {
		t.Fatalf("one_time_fee update: %v", err)
	}
	if enr.EnrollmentOneTimeFee != 750 {
		t.Errorf("one_time_fee = %v, want 750", enr.EnrollmentOneTimeFee)
	}
	if enr.EnrollmentIsActive {
		t.Error("one_time_fee update must not touch is_active")
	}

	tr := true
	if _, err := UpdateEnrollment(db, st.StudentID, id, UpdateEnrollmentInput{IsComplete: &tr}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// Complete = immutable.
	_, err = UpdateEnrollment(db, st.StudentID, id, UpdateEnrollmentInput{OneTimeFee: &oneTime})
	if err == nil {
		t.Fatal("expected conflict on completed enrollment")
	}
	if got := fiberStatus(t, err); got != fiber.StatusConflict {
		t.Errorf("status = %d, want 409", got)
	}

	// Override administratif: buka kembali arsip.
	enr, err = UpdateEnrollment(db, st.StudentID, id, UpdateEnrollmentInput{IsComplete: &f})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if enr.EnrollmentIsComplete {
		t.Error("enrollment still complete after reopen")
	}
}

func TestDeleteEnrollmentCascade(t *testing.T) {
	db := newTestDB(t)
	st := seedStudent(t, db, true)
	sec := seedSection(t, db, true, 100)

	res, err := CreateEnrollment(db, CreateEnrollmentInput{
		StudentID:    st.StudentID,
		SectionID:    sec.SectionID,
		SessionStart: month(2025, time.January),
		SessionEnd:   month(2025, time.April),
	})
	if err != nil {
		t.Fatalf("CreateEnrollment: %v", err)
	}
	id := res.Enrollment.EnrollmentID

	if _, err := feeService.PayFee(db, st.StudentID, id, 100, nil); err != nil {
		t.Fatalf("PayFee: %v", err)
	}
	exam := enrollmentModel.ExamEntryModel{
		ExamEntryStudentID:    st.StudentID,
		ExamEntryEnrollmentID: id,
		ExamEntryName:         "CT 1",
		ExamEntryType:         "CT",
		ExamEntryDate:         month(2025, time.February),
	}
	if err := db.Create(&exam).Error; err != nil {
		t.Fatalf("seed exam entry: %v", err)
	}

	err = DeleteEnrollment(db, st.StudentID, id, false)
	if err == nil {
		t.Fatal("expected conflict: enrollment still has fee entries")
	}
	if got := fiberStatus(t, err); got != fiber.StatusConflict {
		t.Errorf("status = %d, want 409", got)
	}

	if err := DeleteEnrollment(db, st.StudentID, id, true); err != nil {
		t.Fatalf("force delete: %v", err)
	}

	var fees, exams, receipts int64
	db.Model(&feeModel.MonthlyFeeModel{}).Where("monthly_fee_enrollment_id = ?", id).Count(&fees)
	db.Model(&enrollmentModel.ExamEntryModel{}).Where("exam_entry_enrollment_id = ?", id).Count(&exams)
	db.Model(&feeModel.FeePaymentModel{}).Where("fee_payment_enrollment_id = ?", id).Count(&receipts)
	if fees != 0 || exams != 0 {
		t.Errorf("fees/exams after force delete = %d/%d, want 0/0", fees, exams)
	}
	// Kwitansi bertahan sebagai jejak audit.
	if receipts != 1 {
		t.Errorf("receipts after force delete = %d, want 1", receipts)
	}

	var count int64
	db.Model(&enrollmentModel.EnrollmentModel{}).Where("enrollment_id = ?", id).Count(&count)
	if count != 0 {
		t.Errorf("enrollment still present after delete")
	}
}
