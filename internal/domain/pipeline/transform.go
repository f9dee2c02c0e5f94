package pipeline

import (
	"strings"
	"time"
)

// FormInput is the flat shape the multi-step intake form collects. FromForm
// and ToForm are exact inverses of each other modulo default-filling; the
// intake pages depend on never receiving a null where a field is expected.
type FormInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`
	Nationality string `json:"nationality"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
	Country     string `json:"country"`

	Position           string  `json:"position"`
	Department         string  `json:"department"`
	AppliedDate        string  `json:"appliedDate"`
	Source             string  `json:"source"`
	ReferredBy         string  `json:"referredBy"`
	ExpectedSalary     float64 `json:"expectedSalary"`
	AvailableStartDate string  `json:"availableStartDate"`

	Education      []Education `json:"education"`
	Certifications []string    `json:"certifications"`

	WorkExperience []Experience `json:"workExperience"`

	TechnicalSkills []string   `json:"technicalSkills"`
	SoftSkills      []string   `json:"softSkills"`
	Languages       []Language `json:"languages"`

	Resume           string   `json:"resume"`
	CoverLetter      string   `json:"coverLetter"`
	Portfolio        string   `json:"portfolio"`
	OtherAttachments []string `json:"otherAttachments"`

	Notes           string  `json:"notes"`
	TotalExperience float64 `json:"totalExperience"`
	InterviewStage  Stage   `json:"interviewStage"`
	Status          Status  `json:"status"`
}

// FromForm groups the flat form fields into the nested candidate document.
// A free-text notes entry becomes a one-element timestamped note list; stage
// and status default when the form leaves them blank.
func FromForm(form FormInput, now time.Time) Candidate {
	candidate := Candidate{
		PersonalInfo: PersonalInfo{
			FirstName:   form.FirstName,
			LastName:    form.LastName,
			Email:       form.Email,
			Phone:       form.Phone,
			DateOfBirth: form.DateOfBirth,
			Nationality: form.Nationality,
			Address: Address{
				Street:  form.Street,
				City:    form.City,
				State:   form.State,
				ZipCode: form.ZipCode,
				Country: form.Country,
			},
		},
		ApplicationInfo: AppInfo{
			Position:           form.Position,
			Department:         DepartmentRef(form.Department),
			AppliedDate:        form.AppliedDate,
			Source:             form.Source,
			ReferredBy:         form.ReferredBy,
			ExpectedSalary:     form.ExpectedSalary,
			AvailableStartDate: form.AvailableStartDate,
		},
		Qualifications: Qualifications{
			Education:      form.Education,
			Certifications: form.Certifications,
		},
		WorkExperience: form.WorkExperience,
		Skills: Skills{
			Technical: form.TechnicalSkills,
			Soft:      form.SoftSkills,
			Languages: form.Languages,
		},
		Attachments: Attachments{
			Resume:      form.Resume,
			CoverLetter: form.CoverLetter,
			Portfolio:   form.Portfolio,
			Others:      form.OtherAttachments,
		},
		TotalExperience: form.TotalExperience,
		InterviewStage:  form.InterviewStage,
		Status:          form.Status,
	}

	if strings.TrimSpace(form.Notes) != "" {
		candidate.Notes = []Note{{Content: form.Notes, AddedAt: now}}
	}
	if candidate.ApplicationInfo.AppliedDate == "" {
		candidate.ApplicationInfo.AppliedDate = now.Format("2006-01-02")
	}
	if candidate.InterviewStage == "" {
		candidate.InterviewStage = StageApplied
	}
	if candidate.Status == "" {
		candidate.Status = StatusActive
	}
	return candidate
}

// ToForm flattens a candidate document back into the form shape, filling
// every absent field with an empty string or list.
func ToForm(candidate Candidate) FormInput {
	form := FormInput{
		FirstName:   candidate.PersonalInfo.FirstName,
		LastName:    candidate.PersonalInfo.LastName,
		Email:       candidate.PersonalInfo.Email,
		Phone:       candidate.PersonalInfo.Phone,
		DateOfBirth: candidate.PersonalInfo.DateOfBirth,
		Nationality: candidate.PersonalInfo.Nationality,
		Street:      candidate.PersonalInfo.Address.Street,
		City:        candidate.PersonalInfo.Address.City,
		State:       candidate.PersonalInfo.Address.State,
		ZipCode:     candidate.PersonalInfo.Address.ZipCode,
		Country:     candidate.PersonalInfo.Address.Country,

		Position:           candidate.ApplicationInfo.Position,
		Department:         string(candidate.ApplicationInfo.Department),
		AppliedDate:        candidate.ApplicationInfo.AppliedDate,
		Source:             candidate.ApplicationInfo.Source,
		ReferredBy:         candidate.ApplicationInfo.ReferredBy,
		ExpectedSalary:     candidate.ApplicationInfo.ExpectedSalary,
		AvailableStartDate: candidate.ApplicationInfo.AvailableStartDate,

		Education:      emptyIfNilEducation(candidate.Qualifications.Education),
		Certifications: emptyIfNil(candidate.Qualifications.Certifications),

		WorkExperience: emptyIfNilExperience(candidate.WorkExperience),

		TechnicalSkills: emptyIfNil(candidate.Skills.Technical),
		SoftSkills:      emptyIfNil(candidate.Skills.Soft),
		Languages:       emptyIfNilLanguages(candidate.Skills.Languages),

		Resume:           candidate.Attachments.Resume,
		CoverLetter:      candidate.Attachments.CoverLetter,
		Portfolio:        candidate.Attachments.Portfolio,
		OtherAttachments: emptyIfNil(candidate.Attachments.Others),

		TotalExperience: candidate.TotalExperience,
		InterviewStage:  candidate.InterviewStage,
		Status:          candidate.Status,
	}

	if len(candidate.Notes) > 0 {
		form.Notes = candidate.Notes[0].Content
	}
	return form
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func emptyIfNilEducation(values []Education) []Education {
	if values == nil {
		return []Education{}
	}
	return values
}

func emptyIfNilExperience(values []Experience) []Experience {
	if values == nil {
		return []Experience{}
	}
	return values
}

func emptyIfNilLanguages(values []Language) []Language {
	if values == nil {
		return []Language{}
	}
	return values
}
