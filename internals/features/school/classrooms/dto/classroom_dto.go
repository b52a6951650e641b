// internals/features/school/classrooms/dto/classroom_dto.go
package dto

import (
	"encoding/json"
	"strings"

	"github.com/lib/pq"

	model "sekolahku_backend/internals/features/school/classrooms/model"
)

/* =============== CLASSROOM =============== */

type CreateClassroomRequest struct {
	ClassroomName       string  `json:"classroom_name" validate:"required,min=1,max=60"`
	ClassroomDefaultFee float64 `json:"classroom_default_fee" validate:"omitempty,gte=0"`
}

func (r CreateClassroomRequest) ToModel() *model.ClassroomModel {
	return &model.ClassroomModel{
		// Nama kelas disimpan uppercase supaya unik case-insensitive
		ClassroomName:       strings.ToUpper(strings.TrimSpace(r.ClassroomName)),
		ClassroomDefaultFee: r.ClassroomDefaultFee,
		ClassroomIsActive:   true,
	}
}

type UpdateClassroomRequest struct {
	ClassroomName       *string  `json:"classroom_name" validate:"omitempty,min=1,max=60"`
	ClassroomDefaultFee *float64 `json:"classroom_default_fee" validate:"omitempty,gte=0"`
	ClassroomIsActive   *bool    `json:"classroom_is_active" validate:"omitempty"`
}

func (r UpdateClassroomRequest) ApplyTo(m *model.ClassroomModel) {
	if r.ClassroomName != nil {
		m.ClassroomName = strings.ToUpper(strings.TrimSpace(*r.ClassroomName))
	}
	if r.ClassroomDefaultFee != nil {
		m.ClassroomDefaultFee = *r.ClassroomDefaultFee
	}
	if r.ClassroomIsActive != nil {
		m.ClassroomIsActive = *r.ClassroomIsActive
	}
}

/* =============== SECTION =============== */

type CreateSectionRequest struct {
	SectionName       string          `json:"section_name" validate:"required,min=1,max=60"`
	SectionDefaultFee *float64        `json:"section_default_fee" validate:"omitempty,gte=0"`
	SectionSubjects   []model.Subject `json:"section_subjects" validate:"omitempty,dive"`
}

// ToModel: default fee section mewarisi classroom kalau tidak diisi.
func (r CreateSectionRequest) ToModel(room *model.ClassroomModel) *model.ClassSectionModel {
	fee := room.ClassroomDefaultFee
	if r.SectionDefaultFee != nil {
		fee = *r.SectionDefaultFee
	}

	m := &model.ClassSectionModel{
		SectionClassroomID: room.ClassroomID,
		SectionName:        strings.ToUpper(strings.TrimSpace(r.SectionName)),
		SectionDefaultFee:  fee,
		SectionIsActive:    true,
	}
	applySubjects(m, r.SectionSubjects)
	return m
}

type UpdateSectionRequest struct {
	SectionName       *string         `json:"section_name" validate:"omitempty,min=1,max=60"`
	SectionDefaultFee *float64        `json:"section_default_fee" validate:"omitempty,gte=0"`
	SectionSubjects   []model.Subject `json:"section_subjects" validate:"omitempty,dive"`
	SectionIsActive   *bool           `json:"section_is_active" validate:"omitempty"`
}

func (r UpdateSectionRequest) ApplyTo(m *model.ClassSectionModel) {
	if r.SectionName != nil {
		m.SectionName = strings.ToUpper(strings.TrimSpace(*r.SectionName))
	}
	if r.SectionDefaultFee != nil {
		m.SectionDefaultFee = *r.SectionDefaultFee
	}
	if r.SectionSubjects != nil {
		applySubjects(m, r.SectionSubjects)
	}
	if r.SectionIsActive != nil {
		m.SectionIsActive = *r.SectionIsActive
	}
}

// applySubjects mengisi JSON mapel sekaligus mirror kode mapel
// (text[]) untuk filter cepat tanpa membongkar JSON.
func applySubjects(m *model.ClassSectionModel, subjects []model.Subject) {
	if len(subjects) == 0 {
		return
	}
	if raw, err := json.Marshal(subjects); err == nil {
		m.SectionSubjects = raw
	}
	codes := make(pq.StringArray, 0, len(subjects))
	for _, s := range subjects {
		codes = append(codes, strings.ToUpper(strings.TrimSpace(s.Code)))
	}
	m.SectionSubjectCodes = codes
}
