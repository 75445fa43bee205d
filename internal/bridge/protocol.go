package bridge

import (
	"encoding/json"
	"strings"
)

const frameCallTool = "call_tool"

// Call names a tool on a server behind the bridge.
type Call struct {
	ServerName string          `json:"serverName"`
	ToolName   string          `json:"toolName"`
	Arguments  json.RawMessage `json:"arguments"`
}

// Request is the client->bridge frame.
type Request struct {
	Type      string `json:"type"`
	RequestID string `json:"requestId"`
	Params    Call   `json:"params"`
}

type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Response is the bridge->client frame. IsError marks a tool-level failure;
// the transport itself succeeded.
type Response struct {
	RequestID string    `json:"requestId"`
	Content   []Content `json:"content"`
	IsError   bool      `json:"isError,omitempty"`
}

// Text joins the text parts of the response.
func (r Response) Text() string {
	parts := make([]string, 0, len(r.Content))
	for _, c := range r.Content {
		if c.Text != "" {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, "\n")
}
