package pipeline

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks every required candidate field and reports all violations
// together, keyed by field.
func Validate(candidate Candidate) []FieldError {
	var issues []FieldError
	require := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			issues = append(issues, FieldError{Field: field, Reason: "is required"})
		}
	}

	require("personalInfo.firstName", candidate.PersonalInfo.FirstName)
	require("personalInfo.lastName", candidate.PersonalInfo.LastName)
	require("personalInfo.phone", candidate.PersonalInfo.Phone)
	require("applicationInfo.position", candidate.ApplicationInfo.Position)
	require("applicationInfo.appliedDate", candidate.ApplicationInfo.AppliedDate)

	email := strings.TrimSpace(candidate.PersonalInfo.Email)
	switch {
	case email == "":
		issues = append(issues, FieldError{Field: "personalInfo.email", Reason: "is required"})
	case !emailPattern.MatchString(email):
		issues = append(issues, FieldError{Field: "personalInfo.email", Reason: "must be a valid email address"})
	}

	return issues
}
