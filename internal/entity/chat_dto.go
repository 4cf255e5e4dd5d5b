package entity

// ChatRequest is one user message in the guided timesheet conversation.
// SessionID is empty on the first message; the engine then allocates one.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the engine's single reply to one message.
// Completed stays false until the session reaches a terminal state.
// TimesheetData is set only after a successful submission.
type ChatResponse struct {
	Response      string          `json:"response"`
	SessionID     string          `json:"session_id"`
	Completed     bool            `json:"completed"`
	TimesheetData *TimesheetEntry `json:"timesheet_data,omitempty"`
	NextQuestion  string          `json:"next_question,omitempty"`
}

type ChatSessionListResponse struct {
	Sessions []string `json:"sessions"`
	Count    int      `json:"count"`
}
