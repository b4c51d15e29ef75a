package validation

import "strings"

// Field rule constants for school record identifiers.
var (
	// EmailDomainSuffix is the organizational domain every email must end with.
	EmailDomainSuffix = "starschool.com"

	// Identifier prefixes, one per entity kind.
	StudentIDPrefix    = "S"
	InstructorIDPrefix = "I"
	CourseIDPrefix     = "C"
)

// NonEmpty reports whether the value contains at least one non-space character.
func NonEmpty(value string) bool {
	return strings.TrimSpace(value) != ""
}

// OrganizationalEmail reports whether the value is non-empty and carries the
// required domain suffix.
func OrganizationalEmail(value string) bool {
	return NonEmpty(value) && strings.HasSuffix(value, EmailDomainSuffix)
}

// Identifier reports whether the value is a non-empty ID with the given prefix.
func Identifier(value, prefix string) bool {
	return NonEmpty(value) && strings.HasPrefix(value, prefix)
}

// NonNegative reports whether the value is zero or greater.
func NonNegative(value int) bool {
	return value >= 0
}
