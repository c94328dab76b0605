package models

import "time"

// Requests for the chat HTTP endpoints. Defined in domain for consistency and reuse.

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type ChatResponse struct {
	Reply      string `json:"reply"`
	Capability string `json:"capability,omitempty"`
}

// Turn is one entry in a displayed conversation. The agent core is
// stateless; turns exist only for the transport layer that renders them.
type Turn struct {
	Role string    `json:"role"` // "user" or "agent"
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}
