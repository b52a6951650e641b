// internals/features/school/enrollments/dto/enrollment_dto.go
package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	model "sekolahku_backend/internals/features/school/enrollments/model"
)

/* =============== ENROLLMENT =============== */

type CreateEnrollmentRequest struct {
	SectionID    uuid.UUID `json:"section_id" validate:"required"`
	SessionStart string    `json:"session_start" validate:"required,datetime=2006-01-02"`
	SessionEnd   string    `json:"session_end" validate:"required,datetime=2006-01-02"`

	MonthlyFee *float64 `json:"monthly_fee" validate:"omitempty,gte=0"`
	OneTimeFee *float64 `json:"one_time_fee" validate:"omitempty,gte=0"`
}

func (r CreateEnrollmentRequest) SessionDates() (time.Time, time.Time) {
	start, _ := time.Parse("2006-01-02", r.SessionStart)
	end, _ := time.Parse("2006-01-02", r.SessionEnd)
	return start, end
}

type UpdateEnrollmentRequest struct {
	EnrollmentIsActive   *bool    `json:"enrollment_is_active" validate:"omitempty"`
	EnrollmentIsComplete *bool    `json:"enrollment_is_complete" validate:"omitempty"`
	EnrollmentOneTimeFee *float64 `json:"enrollment_one_time_fee" validate:"omitempty,gte=0"`
}

/* =============== PAY / RESET =============== */

type PayFeeRequest struct {
	PaidAmount float64 `json:"paid_amount" validate:"required,gt=0"`
	// Tanggal efektif pelunasan per-entry (opsional)
	PaidOn *string `json:"paid_on" validate:"omitempty,datetime=2006-01-02"`
}

func (r PayFeeRequest) PaidOnDate() *time.Time {
	if r.PaidOn == nil {
		return nil
	}
	d, err := time.Parse("2006-01-02", *r.PaidOn)
	if err != nil {
		return nil
	}
	return &d
}

type ResetFeesRequest struct {
	// nil = pertahankan fee_due lama per entry
	MonthlyFee *float64 `json:"monthly_fee" validate:"omitempty,gte=0"`
}

/* =============== EXAM =============== */

type SubjectResult struct {
	Code           string  `json:"code" validate:"required"`
	TheoryMarks    float64 `json:"theory_marks" validate:"gte=0"`
	TheoryTotal    float64 `json:"theory_total" validate:"gte=0"`
	PracticalMarks float64 `json:"practical_marks" validate:"gte=0"`
	PracticalTotal float64 `json:"practical_total" validate:"gte=0"`
	Passed         bool    `json:"passed"`
}

// ValidateSubjectMarks: nilai perolehan tidak boleh melebihi nilai
// maksimal mapel (total 0 berarti komponen tsb tidak diujikan).
func ValidateSubjectMarks(subjects []SubjectResult) error {
	for _, s := range subjects {
		if s.TheoryTotal > 0 && s.TheoryMarks > s.TheoryTotal {
			return fmt.Errorf("nilai teori %s (%.0f) melebihi maksimal (%.0f)", s.Code, s.TheoryMarks, s.TheoryTotal)
		}
		if s.PracticalTotal > 0 && s.PracticalMarks > s.PracticalTotal {
			return fmt.Errorf("nilai praktik %s (%.0f) melebihi maksimal (%.0f)", s.Code, s.PracticalMarks, s.PracticalTotal)
		}
	}
	return nil
}

type CreateExamEntryRequest struct {
	ExamEntryName string  `json:"exam_entry_name" validate:"required,min=2,max=120"`
	ExamEntryType string  `json:"exam_entry_type" validate:"required,oneof=CT Half-Yearly Yearly Final"`
	ExamEntryDate string  `json:"exam_entry_date" validate:"required,datetime=2006-01-02"`
	ExamEntryNote *string `json:"exam_entry_note" validate:"omitempty,max=2000"`

	ExamEntrySubjects      []SubjectResult `json:"exam_entry_subjects" validate:"required,min=1,dive"`
	ExamEntryStudentPassed bool            `json:"exam_entry_student_passed"`
}

func (r CreateExamEntryRequest) ToModel(studentID, enrollmentID uuid.UUID) *model.ExamEntryModel {
	date, _ := time.Parse("2006-01-02", r.ExamEntryDate)

	m := &model.ExamEntryModel{
		ExamEntryStudentID:     studentID,
		ExamEntryEnrollmentID:  enrollmentID,
		ExamEntryName:          r.ExamEntryName,
		ExamEntryType:          r.ExamEntryType,
		ExamEntryDate:          date,
		ExamEntryNote:          r.ExamEntryNote,
		ExamEntryStudentPassed: r.ExamEntryStudentPassed,
	}
	if raw, err := json.Marshal(r.ExamEntrySubjects); err == nil {
		m.ExamEntrySubjects = raw
	}
	return m
}

// Semua field opsional; controller menolak body kosong.
type UpdateExamEntryRequest struct {
	ExamEntryName *string `json:"exam_entry_name" validate:"omitempty,min=2,max=120"`
	ExamEntryType *string `json:"exam_entry_type" validate:"omitempty,oneof=CT Half-Yearly Yearly Final"`
	ExamEntryDate *string `json:"exam_entry_date" validate:"omitempty,datetime=2006-01-02"`
	ExamEntryNote *string `json:"exam_entry_note" validate:"omitempty,max=2000"`

	ExamEntrySubjects      []SubjectResult `json:"exam_entry_subjects" validate:"omitempty,min=1,dive"`
	ExamEntryStudentPassed *bool           `json:"exam_entry_student_passed" validate:"omitempty"`
}

func (r UpdateExamEntryRequest) IsEmpty() bool {
	return r.ExamEntryName == nil && r.ExamEntryType == nil && r.ExamEntryDate == nil &&
		r.ExamEntryNote == nil && r.ExamEntrySubjects == nil && r.ExamEntryStudentPassed == nil
}

func (r UpdateExamEntryRequest) ApplyTo(m *model.ExamEntryModel) {
	if r.ExamEntryName != nil {
		m.ExamEntryName = *r.ExamEntryName
	}
	if r.ExamEntryType != nil {
		m.ExamEntryType = *r.ExamEntryType
	}
	if r.ExamEntryDate != nil {
		date, _ := time.Parse("2006-01-02", *r.ExamEntryDate)
		m.ExamEntryDate = date
	}
	if r.ExamEntryNote != nil {
		m.ExamEntryNote = r.ExamEntryNote
	}
	if r.ExamEntrySubjects != nil {
		if raw, err := json.Marshal(r.ExamEntrySubjects); err == nil {
			m.ExamEntrySubjects = raw
		}
	}
	if r.ExamEntryStudentPassed != nil {
		m.ExamEntryStudentPassed = *r.ExamEntryStudentPassed
	}
}
