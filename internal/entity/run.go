package entity

// Run triggers.
const (
	RunTriggerSchedule = "schedule"
	RunTriggerAPI      = "api"
	RunTriggerStartup  = "startup"
	RunTriggerManual   = "manual"
)

// Run statuses.
const (
	RunStatusQueued    = "QUEUED"
	RunStatusCompleted = "COMPLETED"
	RunStatusFailed    = "FAILED"
)

// RunRequest is the payload published to the analysis stream to request
// a fresh batch run.
type RunRequest struct {
	RunID       string `json:"run_id"`
	Trigger     string `json:"trigger"`
	RequestedAt string `json:"requested_at"`
}
