package logger

import "strings"

// RedactEmail masks an email address for safe logging. The local part keeps
// its first two characters when it is long enough to stay anonymous:
// "ashok@yopmail.com" -> "as***@yopmail.com", "ab@yopmail.com" ->
// "***@yopmail.com". Anything that does not look like an email is fully
// masked.
func RedactEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "***@***"
	}
	local := parts[0]
	if len(local) > 2 {
		return local[:2] + "***@" + parts[1]
	}
	return "***@" + parts[1]
}
