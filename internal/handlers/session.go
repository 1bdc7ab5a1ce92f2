package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	SessionCookie = "essay_session"
	SessionHeader = "X-Session-ID"

	sessionLocalKey = "session_id"
)

// SessionMiddleware resolves the caller's session from the X-Session-ID
// header or the session cookie and starts a new one when neither holds a
// valid ID. The cookie is renewed on every request and expires together
// with the idle session it names.
func SessionMiddleware(ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(SessionHeader)
		if id == "" {
			id = c.Cookies(SessionCookie)
		}

		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}

		cookie := &fiber.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		}
		if ttl > 0 {
			cookie.Expires = time.Now().Add(ttl)
		}
		c.Cookie(cookie)

		c.Locals(sessionLocalKey, id)
		c.Set(SessionHeader, id)
		return c.Next()
	}
}

// SessionID returns the session resolved by SessionMiddleware.
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(sessionLocalKey).(string)
	return id
}
