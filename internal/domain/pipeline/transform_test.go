package pipeline

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func sampleForm() FormInput {
	return FormInput{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		Phone:       "+44 20 7946 0958",
		DateOfBirth: "1990-12-10",
		Nationality: "British",
		Street:      "12 Analytical Way",
		City:        "London",
		State:       "",
		ZipCode:     "NW1 6XE",
		Country:     "UK",

		Position:           "Backend Engineer",
		Department:         "dep-1",
		AppliedDate:        "2026-08-01",
		Source:             "referral",
		ReferredBy:         "Charles",
		ExpectedSalary:     120000,
		AvailableStartDate: "2026-10-01",

		Education:      []Education{{Degree: "BSc Mathematics", Institution: "UCL", GraduationYear: "2012"}},
		Certifications: []string{"AWS SAA"},

		WorkExperience: []Experience{{
			Company:      "Engine Co",
			Position:     "Engineer",
			StartDate:    "2015-01-01",
			EndDate:      "2020-01-01",
			Technologies: []string{"Go", "Postgres"},
		}},

		TechnicalSkills: []string{"Go", "SQL"},
		SoftSkills:      []string{"Mentoring"},
		Languages:       []Language{{Language: "English", Proficiency: "native"}},

		Resume:           "resume.pdf",
		CoverLetter:      "",
		Portfolio:        "https://example.com",
		OtherAttachments: []string{},

		Notes:           "Strong referral.",
		TotalExperience: 8.5,
		InterviewStage:  StageScreening,
		Status:          StatusActive,
	}
}

func TestFromFormToFormRoundTrip(t *testing.T) {
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	form := sampleForm()

	candidate := FromForm(form, now)
	got := ToForm(candidate)

	if !reflect.DeepEqual(got, form) {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, form)
	}
}

func TestFromFormGrouping(t *testing.T) {
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	candidate := FromForm(sampleForm(), now)

	if candidate.PersonalInfo.Address.City != "London" {
		t.Errorf("address city = %q", candidate.PersonalInfo.Address.City)
	}
	if candidate.Skills.Technical[0] != "Go" {
		t.Errorf("technical skills not grouped: %+v", candidate.Skills)
	}
	if len(candidate.Notes) != 1 || candidate.Notes[0].Content != "Strong referral." {
		t.Fatalf("notes = %+v", candidate.Notes)
	}
	if !candidate.Notes[0].AddedAt.Equal(now) {
		t.Errorf("note timestamp = %v, want %v", candidate.Notes[0].AddedAt, now)
	}
}

func TestFromFormDefaults(t *testing.T) {
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	candidate := FromForm(FormInput{FirstName: "Ada"}, now)

	if candidate.ApplicationInfo.AppliedDate != "2026-08-20" {
		t.Errorf("appliedDate = %q, want today", candidate.ApplicationInfo.AppliedDate)
	}
	if candidate.InterviewStage != StageApplied {
		t.Errorf("stage = %q, want applied", candidate.InterviewStage)
	}
	if candidate.Status != StatusActive {
		t.Errorf("status = %q, want active", candidate.Status)
	}
	if candidate.Notes != nil {
		t.Errorf("blank notes should stay empty, got %+v", candidate.Notes)
	}
}

func TestToFormFillsAbsentCollections(t *testing.T) {
	form := ToForm(Candidate{})

	if form.Education == nil || form.Certifications == nil || form.WorkExperience == nil {
		t.Error("qualification lists should be empty, not nil")
	}
	if form.TechnicalSkills == nil || form.SoftSkills == nil || form.Languages == nil {
		t.Error("skill lists should be empty, not nil")
	}
	if form.OtherAttachments == nil {
		t.Error("attachments list should be empty, not nil")
	}
	if form.Notes != "" {
		t.Errorf("notes = %q, want empty", form.Notes)
	}
}

func TestDepartmentRefAcceptsObjectShape(t *testing.T) {
	var info AppInfo
	payload := `{"position":"Designer","department":{"id":"dep-9","name":"Design"}}`
	if err := json.Unmarshal([]byte(payload), &info); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if info.Department != "dep-9" {
		t.Errorf("department = %q, want dep-9", info.Department)
	}

	payload = `{"position":"Designer","department":"dep-2"}`
	if err := json.Unmarshal([]byte(payload), &info); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if info.Department != "dep-2" {
		t.Errorf("department = %q, want dep-2", info.Department)
	}
}
