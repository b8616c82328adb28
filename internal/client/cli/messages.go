package cli

import (
	"errors"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
)

const msgSignupOK = "Signup successful! You can now log in."

// userMessage turns an intent error into the text shown to the user.
func userMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrMissingFields):
		return "Please enter both username and password."
	case errors.Is(err, common.ErrUserExists):
		return "User already exists! Please log in."
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid credentials. Try again or sign up."
	case errors.Is(err, common.ErrNotLoggedIn):
		return "Please log in first."
	case errors.Is(err, common.ErrInvalidTransition):
		return "That command is not available here (type 'help')."
	case errors.Is(err, common.ErrCourseNotFound), errors.Is(err, errUsage):
		return err.Error()
	default:
		return "Error: " + err.Error()
	}
}
