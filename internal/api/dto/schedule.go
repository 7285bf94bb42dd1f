package dto

type ConflictResponse struct {
	Kind     string   `json:"kind"`
	Severity string   `json:"severity"`
	RouteIDs []string `json:"route_ids"`
	BusID    string   `json:"bus_id,omitempty"`
	Message  string   `json:"message"`
}

type ValidateScheduleResponse struct {
	Valid        bool               `json:"valid"`
	Conflicts    []ConflictResponse `json:"conflicts"`
	ErrorCount   int                `json:"error_count"`
	WarningCount int                `json:"warning_count"`
}
