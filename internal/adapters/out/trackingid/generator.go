// Package trackingid generates candidate parcel tracking identifiers.
package trackingid

import (
	"fmt"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	suffixAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	suffixLength   = 8
)

// Generator produces tracking ids of the form TRK-<yyyymmdd>-<random>, where
// the date part is the UTC generation date and the random part is an 8
// character nanoid over digits and uppercase letters. Uniqueness is
// probabilistic; callers resolve collisions against storage.
type Generator struct {
	clock ports.Clock
}

// NewGenerator creates a tracking id generator stamping dates from the given clock.
func NewGenerator(clock ports.Clock) Generator {
	return Generator{clock: clock}
}

// Generate produces one candidate tracking id.
func (g Generator) Generate() (kernel.TrackingID, error) {
	suffix, err := gonanoid.Generate(suffixAlphabet, suffixLength)
	if err != nil {
		return kernel.TrackingID{}, fmt.Errorf("failed to generate tracking id suffix: %w", err)
	}

	datePart := g.clock.Now().UTC().Format("20060102")

	return kernel.TrackingIDFromString(fmt.Sprintf("TRK-%s-%s", datePart, suffix))
}
