package donation

import (
	"time"

	"generosity-backend/domain"
	"generosity-backend/entities"
)

// ValidateClaim runs the claim guards against a donation snapshot. The
// caller must hold a row lock on the donation for the guard result to stay
// true through the write.
func ValidateClaim(d *entities.Donation, hasPendingClaim bool, quantity int, now time.Time) error {
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}
	if !d.IsAvailable(now) {
		return domain.ErrDonationNotAvailable
	}
	if hasPendingClaim {
		return domain.ErrAlreadyClaimed
	}
	if remaining := d.RemainingQuantity(); quantity > remaining {
		return &domain.InsufficientQuantityError{Remaining: remaining}
	}
	return nil
}

// ApplyClaim books the claimed quantity onto the donation. A fully taken
// donation moves to "expired", which in this schema means fully claimed.
func ApplyClaim(d *entities.Donation, quantity int) {
	d.QuantityTaken += quantity
	if d.QuantityTaken >= d.Quantity {
		d.Status = entities.DonationStatusExpired
	}
}

// ReleaseClaim returns a cancelled claim's quantity to the donation. A
// fully-claimed donation reopens only if its expiry is still in the future;
// cancelled donations stay cancelled.
func ReleaseClaim(d *entities.Donation, quantity int, now time.Time) {
	d.QuantityTaken -= quantity
	if d.QuantityTaken < 0 {
		d.QuantityTaken = 0
	}
	if d.Status == entities.DonationStatusExpired && d.ExpiryDate.After(now) {
		d.Status = entities.DonationStatusAvailable
	}
}
