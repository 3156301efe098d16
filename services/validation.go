package services

import (
	"sort"

	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/utils/optional"
	"github.com/studyabroad/cms-api/utils/validation"
	"gorm.io/datatypes"
)

var validate = newValidator()

// newValidator registers every optional wrapper used by the service inputs.
// A wrapper missing here is not validated.
func newValidator() *validation.Validator {
	v := validation.NewValidator()
	v.RegisterOptional(
		optional.Field[string]{},
		optional.Field[bool]{},
		optional.Field[int]{},
		optional.Field[uint]{},
		optional.Field[model.Status]{},
		optional.Field[model.UserRole]{},
		optional.Field[model.InquiryStatus]{},
		optional.Field[[]model.StudyLevel]{},
		optional.Nullable[string]{},
		optional.Nullable[int]{},
		optional.Nullable[uint]{},
		optional.Nullable[model.Amount]{},
		optional.Nullable[datatypes.JSONSlice[string]]{},
	)
	return v
}

// validateInput checks in against its struct tags.
func validateInput(in interface{}) error {
	if err := validate.ValidateStruct(in); err != nil {
		return newValidationError(err)
	}
	return nil
}

func statusOrDefault(s model.Status) model.Status {
	if s == "" {
		return model.StatusActive
	}
	return s
}

func sortedStrings(s []string) []string {
	sort.Strings(s)
	return s
}
