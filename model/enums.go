package model

import "database/sql/driver"

// Status is the publication state shared by every content entity.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

func (s Status) Value() (driver.Value, error) {
	return string(s), nil
}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive:
		return true
	}
	return false
}

// StudyLevel is the academic level a major is offered at.
type StudyLevel string

const (
	StudyLevelDiploma  StudyLevel = "DIPLOMA"
	StudyLevelBachelor StudyLevel = "BACHELOR"
	StudyLevelMaster   StudyLevel = "MASTER"
	StudyLevelPhD      StudyLevel = "PHD"
)

func (l StudyLevel) Value() (driver.Value, error) {
	return string(l), nil
}

func (l StudyLevel) IsValid() bool {
	switch l {
	case StudyLevelDiploma, StudyLevelBachelor, StudyLevelMaster, StudyLevelPhD:
		return true
	}
	return false
}

// UserRole is the permission level of a back-office account.
type UserRole string

const (
	RoleAdmin             UserRole = "ADMIN"
	RoleEditor            UserRole = "EDITOR"
	RolePartialSupervisor UserRole = "PARTIAL_SUPERVISOR"
)

func (r UserRole) Value() (driver.Value, error) {
	return string(r), nil
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RolePartialSupervisor:
		return true
	}
	return false
}

// LanguageCode identifies one of the four site locales.
type LanguageCode string

const (
	LanguageArabic  LanguageCode = "ar"
	LanguageEnglish LanguageCode = "en"
	LanguageTurkish LanguageCode = "tr"
	LanguageMalay   LanguageCode = "ms"
)

// SupportedLanguages lists every locale in display order.
var SupportedLanguages = []LanguageCode{LanguageArabic, LanguageEnglish, LanguageTurkish, LanguageMalay}

func (c LanguageCode) Value() (driver.Value, error) {
	return string(c), nil
}

func (c LanguageCode) IsValid() bool {
	switch c {
	case LanguageArabic, LanguageEnglish, LanguageTurkish, LanguageMalay:
		return true
	}
	return false
}

// InquiryStatus tracks how far the team has followed up on a lead.
type InquiryStatus string

const (
	InquiryStatusNew       InquiryStatus = "NEW"
	InquiryStatusContacted InquiryStatus = "CONTACTED"
	InquiryStatusCompleted InquiryStatus = "COMPLETED"
	InquiryStatusArchived  InquiryStatus = "ARCHIVED"
)

func (s InquiryStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s InquiryStatus) IsValid() bool {
	switch s {
	case InquiryStatusNew, InquiryStatusContacted, InquiryStatusCompleted, InquiryStatusArchived:
		return true
	}
	return false
}
