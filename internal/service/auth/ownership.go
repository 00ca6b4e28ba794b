package auth

import "github.com/google/uuid"

// Authorize permits access only when the caller owns the resource.
func Authorize(resourceOwnerID, callerID uuid.UUID) error {
	if callerID == uuid.Nil || resourceOwnerID != callerID {
		return ErrForbidden
	}
	return nil
}
