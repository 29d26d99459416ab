// Package validate contains the pure input validators for the taxi
// client. All validators are synchronous, deterministic, and
// side-effect free; the first failing check wins and no errors are
// aggregated.
package validate

import (
	"strings"

	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/model"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/result"
)

// ─── Validation errors ──────────────────────────────────────

// FieldError is a validation failure tied to a specific input field, so
// the UI can mark the offending field in addition to showing a message.
type FieldError struct {
	Field string
	msg   string
}

func (e *FieldError) Error() string { return e.msg }

var (
	// ErrInvalidCustomerID is returned when the customer id is blank.
	ErrInvalidCustomerID = &FieldError{Field: "customer_id", msg: "customer id must not be blank"}

	// ErrInvalidOrigin is returned when the origin address is blank.
	ErrInvalidOrigin = &FieldError{Field: "origin", msg: "origin must not be blank"}

	// ErrInvalidDestination is returned when the destination address is blank.
	ErrInvalidDestination = &FieldError{Field: "destination", msg: "destination must not be blank"}

	// ErrInvalidDistance is returned when the ride distance is below the
	// selected driver's minimum.
	ErrInvalidDistance = &FieldError{Field: "distance", msg: "ride distance is below the driver's minimum"}
)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// ─── Validators ─────────────────────────────────────────────

// EstimateInputs checks the three required estimate fields in order:
// customer id, origin, destination.
func EstimateInputs(customerID, origin, destination string) result.Empty {
	switch {
	case blank(customerID):
		return result.Err[result.Unit](ErrInvalidCustomerID)
	case blank(origin):
		return result.Err[result.Unit](ErrInvalidOrigin)
	case blank(destination):
		return result.Err[result.Unit](ErrInvalidDestination)
	}
	return result.Done()
}

// HistoryInputs checks the required history field.
func HistoryInputs(customerID string) result.Empty {
	if blank(customerID) {
		return result.Err[result.Unit](ErrInvalidCustomerID)
	}
	return result.Done()
}

// DriverDistance rejects a selected option when the matched driver's
// minimum accepted distance exceeds the ride's distance.
func DriverDistance(option model.RideOption, distanceKm float64) result.Empty {
	if MinDistanceKm(option.Name) > distanceKm {
		return result.Err[result.Unit](ErrInvalidDistance)
	}
	return result.Done()
}
