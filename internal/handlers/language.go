package handlers

import (
	"net/http"

	"github.com/judestp/jtb-frontend/internal/i18n"
	"github.com/judestp/jtb-frontend/internal/middleware"
	"github.com/judestp/jtb-frontend/internal/templates"
	"github.com/judestp/jtb-frontend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// languageCookieMaxAge keeps the choice for a year.
const languageCookieMaxAge = 365 * 24 * 60 * 60

type LanguageHandler struct {
	bundle  *i18n.Bundle
	baseURL string
	secure  bool
}

func NewLanguageHandler(bundle *i18n.Bundle, baseURL string, secure bool) *LanguageHandler {
	return &LanguageHandler{bundle: bundle, baseURL: baseURL, secure: secure}
}

// browserLanguage returns the most preferred tag of an Accept-Language
// header, or "".
func browserLanguage(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	return tags[0].String()
}

// Page shows the current and browser language with the selector.
func (h *LanguageHandler) Page(c *gin.Context) {
	base := baseProps(c)

	options := make([]templates.LanguageOption, 0, len(h.bundle.Supported()))
	for _, code := range h.bundle.Supported() {
		options = append(options, templates.LanguageOption{
			Code:     code,
			Label:    base.T("language." + code),
			Selected: code == base.Lang,
		})
	}

	redirectTo := c.Query("redirect")
	if !util.IsRedirectSafe(redirectTo, h.baseURL) {
		redirectTo = ""
	}

	templates.Render(c, http.StatusOK, "language.html", templates.LanguagePageProps{
		BaseProps: base,
		Current:   base.Lang,
		Browser:   browserLanguage(c.GetHeader("Accept-Language")),
		Options:   options,
		Redirect:  redirectTo,
	})
}

// Set stores the chosen language in a cookie and goes back.
func (h *LanguageHandler) Set(c *gin.Context) {
	lang := c.PostForm("lang")
	if !h.bundle.IsSupported(lang) {
		middleware.RenderError(c, http.StatusBadRequest, "unexpected")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.LanguageCookie, lang, languageCookieMaxAge, "/", "", h.secure, true)
	c.Redirect(http.StatusSeeOther, util.SafeRedirect(c.PostForm("redirect"), h.baseURL, "/"))
}
