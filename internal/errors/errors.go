package gerr

import "errors"

var (
	// ErrNotFound maps to a 404 envelope.
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadySubscribed is returned when subscribing an email that is
	// already actively subscribed.
	ErrAlreadySubscribed = errors.New("cette adresse e-mail est déjà inscrite à la newsletter")
	// ErrAlreadyExists maps to a 409 envelope (duplicate slug or metadata key).
	ErrAlreadyExists = errors.New("une entrée avec cette clé existe déjà")
	// ErrNotSubscribed is returned when unsubscribing an unknown email.
	ErrNotSubscribed = errors.New("cette adresse e-mail n'est pas inscrite")
)
