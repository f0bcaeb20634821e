package models

type ScreenResponse struct {
	Success      bool               `json:"success"`
	TotalResumes int                `json:"totalResumes"`
	Results      []CandidateResult  `json:"results"`
	Failures     []ScreeningFailure `json:"failures,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
	Time     string `json:"time"`
}
