package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// UnexpectedKey is shown when no message exists for an error key.
const UnexpectedKey = "errors.unexpected"

// Bundle holds the compiled messages for every supported language.
type Bundle struct {
	bundle  *goi18n.Bundle
	matcher language.Matcher
	tags    []language.Tag
}

// NewBundle loads the embedded locales. defaultLang is used when a request
// matches none of them and must be one of the embedded languages.
func NewBundle(defaultLang string) (*Bundle, error) {
	def, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("invalid default language %q: %w", defaultLang, err)
	}

	b := goi18n.NewBundle(def)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.Glob(localeFS, "locales/*.yaml")
	if err != nil {
		return nil, err
	}

	// The matcher falls back to its first tag, so the default goes first.
	tags := []language.Tag{def}
	found := false
	for _, f := range files {
		mf, err := b.LoadMessageFileFS(localeFS, f)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path.Base(f), err)
		}
		if mf.Tag == def {
			found = true
			continue
		}
		tags = append(tags, mf.Tag)
	}
	if !found {
		return nil, fmt.Errorf("no messages for default language %q", defaultLang)
	}

	return &Bundle{
		bundle:  b,
		matcher: language.NewMatcher(tags),
		tags:    tags,
	}, nil
}

// Supported returns the language codes in preference order, default first.
func (b *Bundle) Supported() []string {
	out := make([]string, 0, len(b.tags))
	for _, t := range b.tags {
		out = append(out, t.String())
	}
	return out
}

// IsSupported reports whether code names one of the embedded languages.
func (b *Bundle) IsSupported(code string) bool {
	for _, t := range b.tags {
		if t.String() == code {
			return true
		}
	}
	return false
}

// Match picks the language for a request. An explicit choice (the
// language cookie) wins over the Accept-Language header.
func (b *Bundle) Match(explicit, acceptLanguage string) string {
	if b.IsSupported(explicit) {
		return explicit
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return b.tags[0].String()
	}
	_, idx, conf := b.matcher.Match(prefs...)
	if conf == language.No {
		return b.tags[0].String()
	}
	return b.tags[idx].String()
}

// Localizer returns a translator for lang.
func (b *Bundle) Localizer(lang string) *Localizer {
	if !b.IsSupported(lang) {
		lang = b.tags[0].String()
	}
	return &Localizer{
		l:    goi18n.NewLocalizer(b.bundle, lang),
		lang: lang,
	}
}

// Localizer translates message ids for one language.
type Localizer struct {
	l    *goi18n.Localizer
	lang string
}

// Lang returns the language code the localizer serves.
func (l *Localizer) Lang() string {
	return l.lang
}

func (l *Localizer) lookup(id string, data map[string]any) (string, bool) {
	// A message missing in this language comes back in the default
	// language together with a not-found error; that text is still usable.
	msg, _ := l.l.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if msg == "" {
		return "", false
	}
	return msg, true
}

// T returns the message for id, or id itself when it is missing.
func (l *Localizer) T(id string) string {
	if msg, ok := l.lookup(id, nil); ok {
		return msg
	}
	return id
}

// Tf is T with template data.
func (l *Localizer) Tf(id string, data map[string]any) string {
	if msg, ok := l.lookup(id, data); ok {
		return msg
	}
	return id
}

// Error resolves an error key. Each namespace is tried as
// "<ns>.errors.<key>", then the shared "errors.<key>", then the generic
// unexpected-error message.
func (l *Localizer) Error(key string, data map[string]any, namespaces ...string) string {
	if key == "" {
		return ""
	}
	candidates := make([]string, 0, len(namespaces)+1)
	for _, ns := range namespaces {
		candidates = append(candidates, strings.Join([]string{ns, "errors", key}, "."))
	}
	candidates = append(candidates, "errors."+key)

	for _, id := range candidates {
		if msg, ok := l.lookup(id, data); ok {
			return msg
		}
	}
	return l.T(UnexpectedKey)
}
