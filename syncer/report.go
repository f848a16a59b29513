package syncer

// SyncReport describes drift between disk and the persisted snapshot
type SyncReport struct {
	InSync        bool     `json:"inSync"`
	TotalChanges  int      `json:"totalChanges"`
	NewFiles      []string `json:"newFiles"`
	RemovedFiles  []string `json:"removedFiles"`
	ModifiedFiles []string `json:"modifiedFiles"`
}

// OutcomeType classifies one re-seed outcome
type OutcomeType string

const (
	OutcomeMaster OutcomeType = "master"
	OutcomePage   OutcomeType = "page"
	OutcomeCode   OutcomeType = "code"
)

// Outcome is the per-file result of a re-seed pass
type Outcome struct {
	File      string      `json:"file"`
	Type      OutcomeType `json:"type"`
	Target    string      `json:"target,omitempty"`
	Lines     int         `json:"lines,omitempty"`
	Sections  int         `json:"sections,omitempty"`
	HasCode   bool        `json:"hasCode,omitempty"`
	HasPrompt bool        `json:"hasPrompt,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// ReseedReport aggregates a full re-seed pass. The batch is best-effort:
// per-file failures land in FailedFiles and never abort the remainder.
type ReseedReport struct {
	ID          string    `json:"id"`
	Outcomes    []Outcome `json:"outcomes"`
	Masters     int       `json:"masters"`
	Pages       int       `json:"pages"`
	CodeFiles   int       `json:"codeFiles"`
	Failures    int       `json:"failures"`
	FailedFiles []string  `json:"failedFiles,omitempty"`
	DurationMs  int64     `json:"durationMs"`
}

func (r *ReseedReport) addFailure(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	r.Failures++
	r.FailedFiles = append(r.FailedFiles, o.File)
}
