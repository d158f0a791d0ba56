package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/princekenny23/primepos-sub004/session"
)

// TerminalIDHeader scopes every order-entry request to one terminal.
const TerminalIDHeader = "X-Terminal-ID"

const sessionKey = "terminal_session"

// RequireTerminal resolves the terminal session for the request and aborts
// when the header is missing.
func RequireTerminal(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		terminalID := c.GetHeader(TerminalIDHeader)
		if terminalID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing " + TerminalIDHeader + " header"})
			c.Abort()
			return
		}
		s, err := registry.Get(terminalID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open terminal session"})
			c.Abort()
			return
		}
		c.Set(sessionKey, s)
		c.Next()
	}
}

// TerminalSession returns the session resolved by RequireTerminal.
func TerminalSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}
