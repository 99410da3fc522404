package services

import (
	"fmt"
	"strings"
	"time"

	"eventplanner/internal/domain"
)

const (
	maxTitleLen       = 255
	maxLocationLen    = 255
	maxDescriptionLen = 5000
	minKeywordLen     = 2
	maxKeywordLen     = 100
	minNameLen        = 2
	maxNameLen        = 255
)

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: event title is required", domain.ErrInvalidInput)
	}
	if len(title) > maxTitleLen {
		return "", fmt.Errorf("%w: event title is too long (max %d characters)", domain.ErrInvalidInput, maxTitleLen)
	}
	return title, nil
}

func validateLocation(location string) (string, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return "", fmt.Errorf("%w: event location is required", domain.ErrInvalidInput)
	}
	if len(location) > maxLocationLen {
		return "", fmt.Errorf("%w: event location is too long (max %d characters)", domain.ErrInvalidInput, maxLocationLen)
	}
	return location, nil
}

// validateDescription trims and bounds an optional description. An empty
// description after trimming becomes nil.
func validateDescription(description *string) (*string, error) {
	if description == nil {
		return nil, nil
	}
	d := strings.TrimSpace(*description)
	if d == "" {
		return nil, nil
	}
	if len(d) > maxDescriptionLen {
		return nil, fmt.Errorf("%w: description is too long (max %d characters)", domain.ErrInvalidInput, maxDescriptionLen)
	}
	return &d, nil
}

func validateClockTime(clock string) (string, error) {
	clock = strings.TrimSpace(clock)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, clock); err == nil {
			return t.Format("15:04:05"), nil
		}
	}
	return "", fmt.Errorf("%w: event time must be a valid clock time (HH:MM or HH:MM:SS)", domain.ErrInvalidInput)
}

func validateStatus(status string) (string, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !domain.ValidStatus(status) {
		return "", fmt.Errorf("%w: attendance status must be one of: pending, going, maybe, not_going", domain.ErrInvalidInput)
	}
	return status, nil
}

func validateSearchFilter(f domain.EventSearchFilter) (domain.EventSearchFilter, error) {
	if f.Keyword != nil {
		k := strings.TrimSpace(*f.Keyword)
		if len(k) < minKeywordLen {
			return f, fmt.Errorf("%w: keyword must be at least %d characters long", domain.ErrInvalidInput, minKeywordLen)
		}
		if len(k) > maxKeywordLen {
			return f, fmt.Errorf("%w: keyword is too long (max %d characters)", domain.ErrInvalidInput, maxKeywordLen)
		}
		f.Keyword = &k
	}
	if f.Role != nil {
		role := strings.ToLower(strings.TrimSpace(*f.Role))
		if !domain.ValidRole(role) {
			return f, fmt.Errorf("%w: role must be one of: organizer, attendee", domain.ErrInvalidInput)
		}
		f.Role = &role
	}
	if f.Status != nil {
		status, err := validateStatus(*f.Status)
		if err != nil {
			return f, err
		}
		f.Status = &status
	}
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return f, fmt.Errorf("%w: start date must be before or equal to end date", domain.ErrInvalidInput)
	}
	if f.Location != nil {
		loc := strings.TrimSpace(*f.Location)
		if loc == "" {
			f.Location = nil
		} else {
			f.Location = &loc
		}
	}
	return f, nil
}
