package interview

import (
	"time"

	"talent/internal/domain/pipeline"
)

type Type string

const (
	TypeInPerson  Type = "in_person"
	TypeVideoCall Type = "video_call"
	TypePhoneCall Type = "phone_call"
)

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusInProgress  Status = "in_progress"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusRescheduled Status = "rescheduled"
	StatusNoShow      Status = "no_show"
)

type Decision string

const (
	DecisionProceed  Decision = "proceed"
	DecisionHire     Decision = "hire"
	DecisionReject   Decision = "reject"
	DecisionWaitlist Decision = "waitlist"
)

type Interview struct {
	ID            string     `json:"id"`
	CandidateID   string     `json:"candidate"`
	InterviewerID string     `json:"interviewer"`
	Details       Details    `json:"interviewDetails"`
	Scheduling    Scheduling `json:"scheduling"`
	Status        Status     `json:"status"`
	Feedback      *Feedback  `json:"feedback,omitempty"`
	Notes         []string   `json:"notes"`
	CancelReason  string     `json:"cancelReason,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type Details struct {
	Type       Type           `json:"type"`
	Stage      pipeline.Stage `json:"stage"`
	Position   string         `json:"position"`
	Department string         `json:"department"`
}

type Scheduling struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Duration int    `json:"duration"`
	Location string `json:"location"`
	Timezone string `json:"timezone"`
}

// Feedback marks an interview as evaluated; storing it completes the
// interview.
type Feedback struct {
	OverallRating       int       `json:"overallRating"`
	TechnicalSkills     Rating    `json:"technicalSkills"`
	CommunicationSkills Rating    `json:"communicationSkills"`
	ProblemSolving      Rating    `json:"problemSolving"`
	CulturalFit         Rating    `json:"culturalFit"`
	Strengths           string    `json:"strengths"`
	Weaknesses          string    `json:"weaknesses"`
	Recommendations     string    `json:"recommendations"`
	Notes               string    `json:"notes"`
	Decision            Decision  `json:"decision"`
	SubmittedAt         time.Time `json:"submittedAt"`
}

type Rating struct {
	Rating   int    `json:"rating"`
	Comments string `json:"comments"`
}

type ListFilter struct {
	Status        Status
	Stage         pipeline.Stage
	CandidateID   string
	InterviewerID string
	Upcoming      bool
	Limit         int
}

// Statistics drives the pipeline-overview widgets. Maps are always non-nil;
// a backend gap reads as zero, never as a crash.
type Statistics struct {
	ByStage            map[pipeline.Stage]int `json:"byStage"`
	ByStatus           map[Status]int         `json:"byStatus"`
	UpcomingInterviews int                    `json:"upcomingInterviews"`
}

// ValidDurations lists the bookable interview lengths in minutes.
var ValidDurations = []int{30, 45, 60, 90, 120}

func ValidDuration(minutes int) bool {
	for _, d := range ValidDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

func ValidType(t Type) bool {
	switch t {
	case TypeInPerson, TypeVideoCall, TypePhoneCall:
		return true
	}
	return false
}
