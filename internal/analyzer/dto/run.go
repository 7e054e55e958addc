package dto

// TriggerAnalysisResponse is the DTO returned when an analysis run is queued.
type TriggerAnalysisResponse struct {
	RunID   string `json:"run_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}
