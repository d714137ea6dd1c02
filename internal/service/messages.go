package service

import (
	"fmt"

	"learntube/internal/core/domain"
)

// Messages shown to the user in PhaseFailed.

func categoryFailureMessage(category domain.Category) func(error) string {
	return func(error) string {
		return fmt.Sprintf("Failed to load %s", category)
	}
}

func describeSearchError(err error) string {
	if domain.KindOf(err) == domain.ErrInvalidRequest {
		return "Invalid search request."
	}
	return "Search failed. Please try again."
}

func describeDetailsError(err error) string {
	if domain.KindOf(err) == domain.ErrNotFound {
		return "Video not found."
	}
	return "Could not load video details."
}
