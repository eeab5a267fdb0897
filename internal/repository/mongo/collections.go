package mongo

import "fmt"

// CollectionNames holds environment-prefixed collection names.
type CollectionNames struct {
	Users         string
	Conversations string
	ChatHistory   string
}

// NewCollectionNames creates collection names with the given prefix.
func NewCollectionNames(prefix string) *CollectionNames {
	return &CollectionNames{
		Users:         fmt.Sprintf("%susers", prefix),
		Conversations: fmt.Sprintf("%schats", prefix),
		ChatHistory:   fmt.Sprintf("%schat_history", prefix),
	}
}
