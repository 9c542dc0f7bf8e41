package service

import "github.com/pizzalab/pizza-service/internal/models"

// RequireStaff fails with ErrForbidden unless the user has the staff role
func RequireStaff(user *models.User) error {
	if !user.IsStaff {
		return ErrForbidden
	}
	return nil
}

// RequireOwnerOrStaff fails with ErrForbidden unless the user owns the
// resource or has the staff role
func RequireOwnerOrStaff(user *models.User, ownerID int64) error {
	if user.ID != ownerID && !user.IsStaff {
		return ErrForbidden
	}
	return nil
}

// RequireOwner fails with ErrForbidden unless the user owns the resource.
// Staff get no override here; order updates are owner-only.
func RequireOwner(user *models.User, ownerID int64) error {
	if user.ID != ownerID {
		return ErrForbidden
	}
	return nil
}
