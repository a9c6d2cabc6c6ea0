package middleware

import (
	"net/url"
	"strings"

	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/auth"
	"github.com/gofiber/fiber/v2"
)

// RouteClass is the outcome of classifying a request path. Every path falls
// into exactly one class.
type RouteClass int

const (
	// RouteOther passes through untouched.
	RouteOther RouteClass = iota
	// RouteAuthInternal covers provider callback and token endpoints.
	RouteAuthInternal
	// RoutePublicAuthPage covers the sign-in and sign-up pages.
	RoutePublicAuthPage
	// RouteProtected covers the forecast and history pages.
	RouteProtected
)

const (
	signInPath  = "/auth/signin"
	landingPath = "/weather"
)

// ClassifyRoute is a pure function of the path.
func ClassifyRoute(path string) RouteClass {
	if strings.HasPrefix(path, "/api/auth") {
		return RouteAuthInternal
	}
	switch path {
	case "/auth/signin", "/auth/signup":
		return RoutePublicAuthPage
	case "/weather", "/history":
		return RouteProtected
	}
	return RouteOther
}

// SessionValidator is the slice of the authenticator the guard needs.
type SessionValidator interface {
	ValidateSession(token string) (*auth.Identity, error)
}

// RouteGuard runs before any handler: unauthenticated access to protected
// pages redirects to sign-in with the original path as callback target, and
// authenticated access to auth pages redirects to the landing page. Auth
// provider endpoints always pass through untouched.
func RouteGuard(sessions SessionValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		class := ClassifyRoute(c.Path())
		if class == RouteAuthInternal || class == RouteOther {
			return c.Next()
		}

		loggedIn := false
		if token := c.Cookies(auth.SessionCookie); token != "" {
			if _, err := sessions.ValidateSession(token); err == nil {
				loggedIn = true
			}
		}

		switch {
		case class == RouteProtected && !loggedIn:
			return c.Redirect(signInPath+"?callbackUrl="+url.QueryEscape(c.Path()), fiber.StatusFound)
		case class == RoutePublicAuthPage && loggedIn:
			return c.Redirect(landingPath, fiber.StatusFound)
		}
		return c.Next()
	}
}
