package dto

// EnqueueJobRequest schedules a background batch run. Period applies to revaluation and
// depreciation, Year to allowance claims; empty values default to the last closed period.
type EnqueueJobRequest struct {
	Period string `json:"period" binding:"omitempty,datetime=2006-01"`
	Year   int    `json:"year" binding:"omitempty,min=1900,max=9999"`
}

// EnqueueJobResponse identifies the queued task.
type EnqueueJobResponse struct {
	TaskID string `json:"taskID"`
	Kind   string `json:"kind"`
}
