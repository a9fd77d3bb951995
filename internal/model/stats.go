package model

// Stats aggregates a user's task counts.
type Stats struct {
	Total          int64              `json:"total"`
	Completed      int64              `json:"completed"`
	Today          int64              `json:"today"`
	Overdue        int64              `json:"overdue"`
	CompletionRate float64            `json:"completion_rate"`
	PriorityStats  map[Priority]int64 `json:"priority_stats"`
}
