package auth

import (
	"net/http"
	"sync"

	"socialgraph/backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"
)

// CookieName is the signed cookie carrying the refresh session value.
const CookieName = "refreshToken"

var (
	codecOnce sync.Once
	codec     *securecookie.SecureCookie
)

func cookieCodec() *securecookie.SecureCookie {
	codecOnce.Do(func() {
		codec = securecookie.New([]byte(config.AppConfig.CookieSecret), nil)
	})
	return codec
}

// SetRefreshCookie signs the refresh value and sets it as an httpOnly cookie.
// Secure is only enforced in production so local clients can still log in.
func SetRefreshCookie(c *gin.Context, value string) error {
	encoded, err := cookieCodec().Encode(CookieName, value)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(CookieName, encoded, int(config.AppConfig.RefreshTokenTTL.Seconds()),
		"/", "", config.AppConfig.Production, true)
	return nil
}

// RefreshCookieValue verifies the signed cookie on the request and returns
// the refresh value it carries.
func RefreshCookieValue(c *gin.Context) (string, error) {
	raw, err := c.Cookie(CookieName)
	if err != nil {
		return "", err
	}

	var value string
	if err := cookieCodec().Decode(CookieName, raw, &value); err != nil {
		return "", err
	}
	return value, nil
}

// ClearRefreshCookie removes the refresh cookie from the client.
func ClearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(CookieName, "", -1, "/", "", config.AppConfig.Production, true)
}
