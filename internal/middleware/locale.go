package middleware

import (
	"github.com/judestp/jtb-frontend/internal/i18n"

	"github.com/gin-gonic/gin"
)

// LanguageCookie holds the language picked in the selector.
const LanguageCookie = "lang"

const localizerKey = "localizer"

// Locale picks the request language from the language cookie, then the
// Accept-Language header, and makes the localizer available to handlers.
func Locale(bundle *i18n.Bundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		chosen, _ := c.Cookie(LanguageCookie)
		lang := bundle.Match(chosen, c.GetHeader("Accept-Language"))
		c.Set(localizerKey, bundle.Localizer(lang))
		c.Next()
	}
}

// GetLocalizer returns the localizer set by Locale, or nil.
func GetLocalizer(c *gin.Context) *i18n.Localizer {
	if v, exists := c.Get(localizerKey); exists {
		if loc, ok := v.(*i18n.Localizer); ok {
			return loc
		}
	}
	return nil
}
