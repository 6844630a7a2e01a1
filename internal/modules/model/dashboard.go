package model

type ProjectSummary struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
	Overdue   int64 `json:"overdue"`
}

type TaskSummary struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"in_progress"`
}

type CategorySummary struct {
	Total int64 `json:"total"`
}

// Dashboard is a per-owner snapshot over active entities.
type Dashboard struct {
	Projects   ProjectSummary  `json:"projects"`
	Tasks      TaskSummary     `json:"tasks"`
	Categories CategorySummary `json:"categories"`
}
