package pipeline

import (
	"encoding/json"
	"time"
)

type Candidate struct {
	ID              string         `json:"id"`
	PersonalInfo    PersonalInfo   `json:"personalInfo"`
	ApplicationInfo AppInfo        `json:"applicationInfo"`
	Qualifications  Qualifications `json:"qualifications"`
	WorkExperience  []Experience   `json:"workExperience"`
	Skills          Skills         `json:"skills"`
	Attachments     Attachments    `json:"attachments"`
	Notes           []Note         `json:"notes"`
	TotalExperience float64        `json:"totalExperience"`
	InterviewStage  Stage          `json:"interviewStage"`
	Status          Status         `json:"status"`
	RejectionReason string         `json:"rejectionReason,omitempty"`
	HiredAt         *time.Time     `json:"hiredAt,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

type PersonalInfo struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	DateOfBirth string  `json:"dateOfBirth"`
	Nationality string  `json:"nationality"`
	Address     Address `json:"address"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type AppInfo struct {
	Position           string        `json:"position"`
	Department         DepartmentRef `json:"department"`
	AppliedDate        string        `json:"appliedDate"`
	Source             string        `json:"source"`
	ReferredBy         string        `json:"referredBy"`
	ExpectedSalary     float64       `json:"expectedSalary"`
	AvailableStartDate string        `json:"availableStartDate"`
}

// DepartmentRef is a department id that also accepts the expanded
// {"id","name"} object shape some responses populate the reference with.
type DepartmentRef string

func (d *DepartmentRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		var ref struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(data, &ref); err != nil {
			return err
		}
		*d = DepartmentRef(ref.ID)
		return nil
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*d = DepartmentRef(id)
	return nil
}

type Qualifications struct {
	Education      []Education `json:"education"`
	Certifications []string    `json:"certifications"`
}

type Education struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	GraduationYear string `json:"graduationYear"`
	GPA            string `json:"gpa"`
}

type Experience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

type Skills struct {
	Technical []string   `json:"technical"`
	Soft      []string   `json:"soft"`
	Languages []Language `json:"languages"`
}

type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

type Attachments struct {
	Resume      string   `json:"resume"`
	CoverLetter string   `json:"coverLetter"`
	Portfolio   string   `json:"portfolio"`
	Others      []string `json:"others"`
}

type Note struct {
	Content string    `json:"content"`
	AddedAt time.Time `json:"addedAt"`
	AddedBy string    `json:"addedBy"`
}

type ListFilter struct {
	Search   string
	Status   Status
	Stage    Stage
	Position string
	Page     int
	Limit    int
}
