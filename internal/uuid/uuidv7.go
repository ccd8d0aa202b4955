// Package uuid generates time-ordered identifiers for database keys.
package uuid

import googleuuid "github.com/google/uuid"

// New returns a UUIDv7 string. V7 ids embed a millisecond timestamp, so id
// order matches insertion order and b-tree inserts stay append-mostly.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Random source failure; a v4 id still works as a key, it just
		// doesn't sort by time.
		return googleuuid.NewString()
	}
	return id.String()
}

// Parse validates a UUID string and returns it in canonical form.
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid reports whether s is a well-formed UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
