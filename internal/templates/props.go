package templates

import (
	"github.com/judestp/jtb-frontend/internal/i18n"
	"github.com/judestp/jtb-frontend/internal/models"
	"github.com/judestp/jtb-frontend/internal/nav"
	"github.com/judestp/jtb-frontend/internal/store"
)

// BaseProps contains common properties shared across all pages
type BaseProps struct {
	CSRFToken string
	Lang      string
	loc       *i18n.Localizer
}

// NewBaseProps binds a page to the request's localizer.
func NewBaseProps(csrfToken string, loc *i18n.Localizer) BaseProps {
	p := BaseProps{CSRFToken: csrfToken, Lang: "en", loc: loc}
	if loc != nil {
		p.Lang = loc.Lang()
	}
	return p
}

// T translates a message id.
func (p BaseProps) T(id string) string {
	if p.loc == nil {
		return id
	}
	return p.loc.T(id)
}

// Tf translates a message id with key/value template data,
// e.g. {{.Tf "search.results" "Count" 3}}.
func (p BaseProps) Tf(id string, kv ...any) string {
	if p.loc == nil {
		return id
	}
	data := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			data[k] = kv[i+1]
		}
	}
	return p.loc.Tf(id, data)
}

// ErrorText translates an error key, trying the given namespaces first.
func (p BaseProps) ErrorText(key string, namespaces ...string) string {
	if p.loc == nil {
		return key
	}
	return p.loc.Error(key, nil, namespaces...)
}

// ErrorTextf is ErrorText with template data.
func (p BaseProps) ErrorTextf(key string, data map[string]any, namespaces ...string) string {
	if p.loc == nil {
		return key
	}
	return p.loc.Error(key, data, namespaces...)
}

// NavbarProps contains properties for the header navigation
type NavbarProps struct {
	User  *models.PublicUser
	Menus []nav.Menu
}

// PaginationProps contains properties for the pager
type PaginationProps struct {
	Pagination store.PaginationResult
	BaseURL    string
	Query      string
}

// FieldErrors maps a form field to its translated message.
type FieldErrors map[string]string

// ===== Page Props Structures =====

// ErrorPageProps contains properties for the error page
type ErrorPageProps struct {
	BaseProps
	Error   string
	Message string
}

// LoginPageProps contains properties for the sign-in form
type LoginPageProps struct {
	BaseProps
	Identifier string
	Error      string
	Notice     string
	Fields     FieldErrors
}

// OTPPageProps contains properties for the one-time password form
type OTPPageProps struct {
	BaseProps
	Username string
	Length   int
	Error    string
	Fields   FieldErrors
}

// ShellPageProps contains properties for the signed-in landing page
type ShellPageProps struct {
	BaseProps
	NavbarProps
	Selected string
}

// UserSearchPageProps contains properties for the user search page
type UserSearchPageProps struct {
	BaseProps
	NavbarProps
	PaginationProps
	Scope    string
	Entries  []models.DirectoryEntry
	Searched bool
}

// UnlockPageProps contains properties for the lock release page
type UnlockPageProps struct {
	BaseProps
	NavbarProps
	Query   string
	Users   []*models.PublicUser
	Notice  string
	Error   string
	Enabled bool
}

// PasswordForgotPageProps contains properties for the reset request form
type PasswordForgotPageProps struct {
	BaseProps
	Identifier string
	Error      string
	Notice     string
}

// PasswordSetupPageProps contains properties for the password setup form
type PasswordSetupPageProps struct {
	BaseProps
	MinLength int
	Fields    FieldErrors
	Saved     bool
}

// PasswordChangePageProps contains properties for the password change form
type PasswordChangePageProps struct {
	BaseProps
	NavbarProps
	MinLength int
	Fields    FieldErrors
	Saved     bool
}

// LanguageOption is one entry of the language selector
type LanguageOption struct {
	Code     string
	Label    string
	Selected bool
}

// LanguagePageProps contains properties for the language page
type LanguagePageProps struct {
	BaseProps
	Current  string
	Browser  string
	Options  []LanguageOption
	Redirect string
}
