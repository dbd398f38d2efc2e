// Package viewer assigns an anonymous identity to each browser via a
// long-lived cookie. There are no accounts; the id only scopes workspace
// snapshots, export history and the premium entitlement.
package viewer

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CookieName = "psid"
	cookieTTL  = int(365 * 24 * time.Hour / time.Second)

	contextKey = "viewer_id"
)

// ID returns the caller's viewer id, minting and setting the cookie on
// first contact.
func ID(c *gin.Context) string {
	if id, ok := c.Get(contextKey); ok {
		return id.(string)
	}

	id, err := c.Cookie(CookieName)
	if err != nil || uuid.Validate(id) != nil {
		id = uuid.New().String()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, id, cookieTTL, "/", "", false, true)
	}
	c.Set(contextKey, id)
	return id
}
