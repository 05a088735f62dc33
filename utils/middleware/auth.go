package middleware

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sahilchouksey/datacat/utils/response"
)

// authKey is the session key carrying the logged-in identity.
const authKey = "auth"

// SessionGate redirects unauthenticated requests to the login page.
// Everything except the allow-list (login, health check, static assets)
// requires a session identity.
type SessionGate struct {
	sessions *session.Store
}

// NewSessionGate creates the gate over a session store
func NewSessionGate(sessions *session.Store) *SessionGate {
	return &SessionGate{sessions: sessions}
}

// skip reports whether a path is reachable without a session identity.
// Paths with a file extension pass through so static assets load on the
// login page.
func (g *SessionGate) skip(path string) bool {
	switch path {
	case "/login", "/ping", "/favicon.ico":
		return true
	}
	if strings.HasPrefix(path, "/static/") {
		return true
	}
	return filepath.Ext(path) != ""
}

// Handler is the gate middleware. On success the identity is stored in
// c.Locals under "auth" for downstream handlers to scope their queries.
func (g *SessionGate) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if g.skip(c.Path()) {
			return c.Next()
		}

		sess, err := g.sessions.Get(c)
		if err != nil {
			return response.Redirect(c, "/login")
		}

		auth, ok := sess.Get(authKey).(string)
		if !ok || auth == "" {
			return response.Redirect(c, "/login")
		}

		c.Locals(authKey, auth)
		return c.Next()
	}
}

// Identity returns the authenticated principal stored by the gate.
func Identity(c *fiber.Ctx) string {
	auth, _ := c.Locals(authKey).(string)
	return auth
}

// SetIdentity writes the identity into the session after a successful login.
func SetIdentity(sess *session.Session, name string) {
	sess.Set(authKey, name)
}

// ClearIdentity removes the identity from the session on logout.
func ClearIdentity(sess *session.Session) {
	sess.Delete(authKey)
}
