package models

// ChatRequest for POST /chat
type ChatRequest struct {
	ThreadID string `json:"threadId,omitempty"`
	Message  string `json:"message"`
}
