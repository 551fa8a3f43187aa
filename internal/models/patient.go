package models

import (
	"time"
)

// DoctorID 主治医生标识（产品内固定的三位医生）
type DoctorID string

const (
	DoctorAllali DoctorID = "allali"
	DoctorKbida  DoctorID = "kbida"
	DoctorHlawa  DoctorID = "hlawa"
)

// ValidDoctorID 校验医生标识
func ValidDoctorID(id DoctorID) bool {
	switch id {
	case DoctorAllali, DoctorKbida, DoctorHlawa:
		return true
	}
	return false
}

// Patient 患者（对应 patients 表）
type Patient struct {
	ID               string   `json:"id" db:"id"`
	FullName         string   `json:"full_name" db:"full_name"`
	DateOfBirth      *string  `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Gender           *string  `json:"gender,omitempty" db:"gender"` // male, female, other
	PhoneNumber      *string  `json:"phone_number,omitempty" db:"phone_number"`
	EmergencyContact *string  `json:"emergency_contact,omitempty" db:"emergency_contact"`
	MedicalHistory   *string  `json:"medical_history,omitempty" db:"medical_history"`
	AssignedDoctor   DoctorID `json:"assigned_doctor" db:"assigned_doctor"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
