package auth

// user-facing messages for known provider error codes, generic fallback
// for everything else
const genericAuthMessage = "Authentication failed"

var userMessages = map[string]string{
	"EMAIL_EXISTS":                "This email is already registered",
	"auth/email-already-in-use":   "This email is already registered",
	"WEAK_PASSWORD":               "Password is too weak",
	"auth/weak-password":          "Password is too weak",
	"INVALID_LOGIN_CREDENTIALS":   "Invalid email or password",
	"INVALID_PASSWORD":            "Invalid email or password",
	"EMAIL_NOT_FOUND":             "Invalid email or password",
	"auth/invalid-credential":     "Invalid email or password",
	"auth/user-not-found":         "Invalid email or password",
	"TOO_MANY_ATTEMPTS_TRY_LATER": "Too many attempts, try again later",
}

// UserMessage maps a provider error code to a fixed user-facing message.
func UserMessage(code string) string {
	if msg, ok := userMessages[code]; ok {
		return msg
	}
	return genericAuthMessage
}
