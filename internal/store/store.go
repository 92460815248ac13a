// Package store provides the key-value substrate the repositories persist
// into: one opaque value per collection key, loaded and rewritten whole on
// every operation.
package store

import "context"

// Collection keys. The seven collections are serialized independently;
// there is no cross-collection transaction.
const (
	KeyAdmin        = "hospitalAdmin"
	KeyDoctors      = "hospitalDoctors"
	KeyPatients     = "hospitalPatients"
	KeyPatientUsers = "patientUsers"
	KeyAvailability = "doctorAvailability"
	KeyRequests     = "appointmentRequests"
	KeyAppointments = "approvedAppointments"
)

// Store is the minimal key-value contract all backends implement.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put stores the value, overwriting any previous one.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes the key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
