package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

const (
	MinPasswordLength = 6
	MaxPasswordLength = 128

	MaxNameLength        = 50
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	MaxVenueLength       = 200
	MaxDepartmentLength  = 100
)

var (
	emailRegex = regexp.MustCompile(`^[\w.+-]+@[\w-]+(\.[\w-]+)+$`)
	timeRegex  = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

	// Generated upload filenames: <prefix>-[<callerID>-]<millis>-<rand>.<ext>
	// Caller-supplied filenames on delete must match this exactly so a
	// request can never resolve outside the category directory.
	uploadFilenameRegex = regexp.MustCompile(`^(avatar|event|gallery)-([0-9]+-)?[0-9]+-[0-9]+\.[a-zA-Z0-9]{1,8}$`)
)

func ValidateEmail(email string) (bool, string) {
	email = strings.TrimSpace(strings.ToLower(email))

	if email == "" {
		return false, "Email is required"
	}

	if !emailRegex.MatchString(email) {
		return false, "Please provide a valid email address"
	}

	return true, ""
}

func ValidatePassword(password string) (bool, string) {
	if password == "" {
		return false, "Password is required"
	}

	if len(password) < MinPasswordLength {
		return false, "Password must be at least 6 characters"
	}

	if len(password) > MaxPasswordLength {
		return false, "Password must not exceed 128 characters"
	}

	return true, ""
}

func ValidateName(name, field string) (bool, string) {
	name = strings.TrimSpace(name)

	if name == "" {
		return false, field + " is required"
	}

	if len(name) > MaxNameLength {
		return false, field + " cannot exceed 50 characters"
	}

	for _, char := range name {
		if !unicode.IsLetter(char) && !unicode.IsSpace(char) && char != '-' && char != '\'' {
			return false, field + " contains invalid characters"
		}
	}

	return true, ""
}

// ValidateEventFields checks the required fields of an event create/update request.
func ValidateEventFields(title, description, venue, startTime, endTime string, date time.Time) (bool, string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return false, "Event title is required"
	}
	if len(title) > MaxTitleLength {
		return false, "Event title cannot exceed 200 characters"
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return false, "Event description is required"
	}
	if len(description) > MaxDescriptionLength {
		return false, "Event description cannot exceed 2000 characters"
	}

	venue = strings.TrimSpace(venue)
	if venue == "" {
		return false, "Event venue is required"
	}
	if len(venue) > MaxVenueLength {
		return false, "Venue cannot exceed 200 characters"
	}

	if date.IsZero() {
		return false, "Event date is required"
	}

	if !timeRegex.MatchString(startTime) {
		return false, "Please provide a valid start time (HH:MM)"
	}
	if !timeRegex.MatchString(endTime) {
		return false, "Please provide a valid end time (HH:MM)"
	}

	return true, ""
}

// ValidateUploadFilename reports whether filename matches the server's own
// generation pattern. Anything else (dotdot segments, separators, foreign
// names) is rejected before any path is resolved.
func ValidateUploadFilename(filename string) bool {
	if strings.ContainsAny(filename, "/\\") {
		return false
	}
	return uploadFilenameRegex.MatchString(filename)
}
