package uuid

import (
	googleuuid "github.com/google/uuid"
)

// opportunityNamespace scopes identifiers synthesized for CRM records that
// arrive without one.
var opportunityNamespace = googleuuid.MustParse("8f0c6a52-3f7e-4d4b-9a0e-5c1d2b7e6f10")

// New generates a new time-ordered UUIDv7, suitable for use as a database
// primary key. Falls back to a random UUIDv4 if the entropy source fails.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.New().String()
	}
	return id.String()
}

// FromContent returns a name-based UUIDv5 for data. The same bytes always
// produce the same identifier.
func FromContent(data []byte) string {
	return googleuuid.NewSHA1(opportunityNamespace, data).String()
}

// Parse validates and parses a UUID string
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
