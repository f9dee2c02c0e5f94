package interview

import (
	"fmt"

	"talent/internal/domain/pipeline"
)

// FormatDateTime renders the scheduled instant for display, "TBD" when
// either part is missing or unparseable.
func FormatDateTime(date, timeOfDay string) string {
	if date == "" || timeOfDay == "" {
		return "TBD"
	}
	at, err := CombineDateTime(date, timeOfDay)
	if err != nil {
		return "TBD"
	}
	return at.Format("Jan 2, 2006 at 15:04")
}

// FormatDuration renders minutes as a compact "Xh Ym", omitting the zero
// component.
func FormatDuration(minutes int) string {
	hours := minutes / 60
	remainder := minutes % 60
	switch {
	case hours > 0 && remainder > 0:
		return fmt.Sprintf("%dh %dm", hours, remainder)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", remainder)
	}
}

var statusColors = map[Status]string{
	StatusScheduled:   "blue",
	StatusInProgress:  "yellow",
	StatusCompleted:   "green",
	StatusCancelled:   "red",
	StatusRescheduled: "orange",
	StatusNoShow:      "slate",
}

func StatusColor(status Status) string {
	if color, ok := statusColors[status]; ok {
		return color
	}
	return "gray"
}

// StageColor reuses the pipeline color table; the interview stages are a
// subset of the candidate stages.
func StageColor(stage pipeline.Stage) string {
	return pipeline.StageColor(stage)
}

var stageNames = map[pipeline.Stage]string{
	pipeline.StageScreening:       "Screening",
	pipeline.StageTechnical:       "Technical Round",
	pipeline.StageHRRound:         "HR Round",
	pipeline.StagePortfolioReview: "Portfolio Review",
	pipeline.StageFinal:           "Final Round",
}

// FormatStageName is deliberately more permissive than the color mappers:
// an unknown value is returned unchanged.
func FormatStageName(stage pipeline.Stage) string {
	if name, ok := stageNames[stage]; ok {
		return name
	}
	return string(stage)
}

var typeNames = map[Type]string{
	TypeInPerson:  "In Person",
	TypeVideoCall: "Video Call",
	TypePhoneCall: "Phone Call",
}

func FormatInterviewType(t Type) string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return string(t)
}
