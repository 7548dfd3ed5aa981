package models

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp string            `json:"timestamp"`
	UptimeSec float64           `json:"uptime_sec"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ToolCall mirrors one recorded tool invocation in a chat reply
type ToolCall struct {
	ID         string         `json:"id"`
	ToolName   string         `json:"toolName"`
	Input      map[string]any `json:"input"`
	Output     map[string]any `json:"output"`
	DurationMs int64          `json:"durationMs"`
}

// ChatResponse is returned by POST /chat (non-streaming)
type ChatResponse struct {
	ThreadID  string     `json:"threadId"`
	Message   string     `json:"message"`
	ToolCalls []ToolCall `json:"toolCalls"`
}

// ToolDescriptor is one entry of GET /tools
type ToolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// ToolsResponse is returned by GET /tools
type ToolsResponse struct {
	Tools []ToolDescriptor `json:"tools"`
	Count int              `json:"count"`
}
