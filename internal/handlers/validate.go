// Package handlers implements the JSON REST handlers for ProjectBoard.
// This file provides input validation for request bodies. All validation
// errors carry messages safe to show to API consumers.
package handlers

import (
	"fmt"
	"net/mail"
	"strings"
)

// Allowed item priority values, checked on create and update.
var validPriorities = map[string]bool{
	"low":    true,
	"medium": true,
	"high":   true,
}

// validateRequired checks that a required string field is present and not
// just whitespace.
func validateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// validateEmail validates email address format according to RFC 5322.
func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > 255 {
		return fmt.Errorf("email must be less than 255 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// validateOptionalEmail validates an email only when one was supplied.
// Used for notify_email, which is optional on every mutating endpoint.
func validateOptionalEmail(email string) error {
	if email == "" {
		return nil
	}
	return validateEmail(email)
}

// validatePriority checks an item priority against the allowed values.
func validatePriority(priority string) error {
	if !validPriorities[priority] {
		return fmt.Errorf("priority must be low, medium or high")
	}
	return nil
}
