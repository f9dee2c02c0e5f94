package pipeline

// Stage is a candidate's position in the hiring pipeline. The active stages
// form a fixed ordering; rejected is reachable from any of them and absorbs.
type Stage string

const (
	StageApplied         Stage = "applied"
	StageScreening       Stage = "screening"
	StageTechnical       Stage = "technical"
	StageHRRound         Stage = "hr_round"
	StagePortfolioReview Stage = "portfolio_review"
	StageFinal           Stage = "final"
	StageSelected        Stage = "selected"
	StageRejected        Stage = "rejected"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusWithdrawn Status = "withdrawn"
	StatusHired     Status = "hired"
	StatusRejected  Status = "rejected"
	StatusOnHold    Status = "on_hold"
)

var stageOrder = []Stage{
	StageApplied,
	StageScreening,
	StageTechnical,
	StageHRRound,
	StagePortfolioReview,
	StageFinal,
	StageSelected,
}

// NextStage returns the stage one step forward in the fixed ordering.
// Selected and rejected are terminal.
func NextStage(stage Stage) (Stage, error) {
	for i, s := range stageOrder {
		if s != stage {
			continue
		}
		if i == len(stageOrder)-1 {
			return "", ErrInvalidTransition
		}
		return stageOrder[i+1], nil
	}
	return "", ErrInvalidTransition
}

func ValidStage(stage Stage) bool {
	if stage == StageRejected {
		return true
	}
	for _, s := range stageOrder {
		if s == stage {
			return true
		}
	}
	return false
}

// InterviewStages returns the subset of stages an interview round can target.
// Applied, selected and rejected are pipeline-only.
func InterviewStages() []Stage {
	return []Stage{StageScreening, StageTechnical, StageHRRound, StagePortfolioReview, StageFinal}
}

func IsInterviewStage(stage Stage) bool {
	for _, s := range InterviewStages() {
		if s == stage {
			return true
		}
	}
	return false
}

var stageLabels = map[Stage]string{
	StageApplied:         "Applied",
	StageScreening:       "Screening",
	StageTechnical:       "Technical",
	StageHRRound:         "HR Round",
	StagePortfolioReview: "Portfolio Review",
	StageFinal:           "Final",
	StageSelected:        "Selected",
	StageRejected:        "Rejected",
}

var statusLabels = map[Status]string{
	StatusActive:    "Active",
	StatusWithdrawn: "Withdrawn",
	StatusHired:     "Hired",
	StatusRejected:  "Rejected",
	StatusOnHold:    "On Hold",
}

var stageColors = map[Stage]string{
	StageApplied:         "blue",
	StageScreening:       "cyan",
	StageTechnical:       "purple",
	StageHRRound:         "orange",
	StagePortfolioReview: "pink",
	StageFinal:           "indigo",
	StageSelected:        "green",
	StageRejected:        "red",
}

var statusColors = map[Status]string{
	StatusActive:    "green",
	StatusWithdrawn: "yellow",
	StatusHired:     "emerald",
	StatusRejected:  "red",
	StatusOnHold:    "amber",
}

// StageLabel returns a display label, "Unknown" for values outside the enum
// so stale backend data never breaks rendering.
func StageLabel(stage Stage) string {
	if label, ok := stageLabels[stage]; ok {
		return label
	}
	return "Unknown"
}

func StatusLabel(status Status) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return "Unknown"
}

func StageColor(stage Stage) string {
	if color, ok := stageColors[stage]; ok {
		return color
	}
	return "gray"
}

func StatusColor(status Status) string {
	if color, ok := statusColors[status]; ok {
		return color
	}
	return "gray"
}
