package models

// ErrorResponse is the JSON error payload of every endpoint.
// Kind is stable ("input", "connection", "query") and meant for programs;
// Error is a short human readable summary; Message carries optional detail.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Kind    string `json:"kind,omitempty"`
}
