package models

// Role identifies who produced a message. A single tagged record with a role
// field keeps serialization exhaustive without subtype dispatch.
type Role string

const (
	RoleSystem Role = "system"
	RoleHuman  Role = "human"
	RoleAI     Role = "ai"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleHuman, RoleAI:
		return true
	}
	return false
}

// Message is one turn in a conversation. Messages are immutable once appended
// and their position in the conversation's ordered sequence never changes.
type Message struct {
	Role     Role           `json:"type" bson:"type"`
	Content  string         `json:"content" bson:"content"`
	Metadata map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// HumanMessage builds a human-role message.
func HumanMessage(content string) Message {
	return Message{Role: RoleHuman, Content: content}
}

// AIMessage builds an ai-role message.
func AIMessage(content string) Message {
	return Message{Role: RoleAI, Content: content}
}
