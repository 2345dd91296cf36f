package entity

import "github.com/asaskevich/govalidator"

// ValidationError carries a user-facing message for a rejected payload.
// Messages are in French since they are surfaced verbatim by the site.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidEmail reports whether s looks like a deliverable email address.
func IsValidEmail(s string) bool {
	return govalidator.IsEmail(s)
}
