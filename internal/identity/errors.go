package identity

import "github.com/BruksfildServices01/coach-calendar/internal/httperr"

const (
	CodeUserNotFound        = "user_not_found"
	CodeWrongPassword       = "wrong_password"
	CodeEmailAlreadyInUse   = "email_already_in_use"
	CodeWeakPassword        = "weak_password"
	CodeInvalidEmail        = "invalid_email"
	CodeInvalidRole         = "invalid_role"
	CodeRequiresRecentLogin = "requires_recent_login"
	CodeLoginFailed         = "login_failed"
)

var (
	ErrUserNotFound        = httperr.ErrBusiness(CodeUserNotFound)
	ErrWrongPassword       = httperr.ErrBusiness(CodeWrongPassword)
	ErrEmailAlreadyInUse   = httperr.ErrBusiness(CodeEmailAlreadyInUse)
	ErrWeakPassword        = httperr.ErrBusiness(CodeWeakPassword)
	ErrInvalidEmail        = httperr.ErrBusiness(CodeInvalidEmail)
	ErrInvalidRole         = httperr.ErrBusiness(CodeInvalidRole)
	ErrRequiresRecentLogin = httperr.ErrBusiness(CodeRequiresRecentLogin)
)

var messages = map[string]string{
	CodeUserNotFound:        "No account found with this email.",
	CodeWrongPassword:       "Incorrect password.",
	CodeEmailAlreadyInUse:   "This email is already in use. Try logging in instead.",
	CodeWeakPassword:        "Password must be at least 6 characters.",
	CodeInvalidEmail:        "Please enter a valid email address.",
	CodeInvalidRole:         "Role must be coach or client.",
	CodeRequiresRecentLogin: "Please enter your password again to continue.",
}

// Message is the user-facing text for an authentication error code.
func Message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Failed to login. Please try again."
}
