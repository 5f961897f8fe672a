package models

// UpstreamResult is the loose body some upstream write endpoints answer with.
// Either flag may be missing.
type UpstreamResult struct {
	Success *bool                  `json:"success,omitempty"`
	Status  *int                   `json:"status,omitempty"`
	Message string                 `json:"message,omitempty"`
	Errors  map[string]interface{} `json:"errors,omitempty"`
}

type FormErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}
