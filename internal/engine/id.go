package engine

import "github.com/rs/xid"

// generateID creates a sortable, globally unique brew session ID.
func generateID() string {
	return xid.New().String()
}
