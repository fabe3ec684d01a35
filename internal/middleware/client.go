package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ClientIDHeader  = "X-Client-ID"
	ContextClientID = "clientID"

	maxClientIDLength = 64
)

// ClientID identifies the anonymous browser a request comes from. The id
// is taken from the X-Client-ID header, or generated, and always echoed
// back so the client can persist it.
func ClientID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(ClientIDHeader))
		if !validClientID(id) {
			id = uuid.NewString()
		}

		c.Set(ContextClientID, id)
		c.Header(ClientIDHeader, id)
		c.Next()
	}
}

// GetClientID returns the id set by ClientID, or "" outside that middleware.
func GetClientID(c *gin.Context) string {
	return c.GetString(ContextClientID)
}

func validClientID(id string) bool {
	if id == "" || len(id) > maxClientIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
