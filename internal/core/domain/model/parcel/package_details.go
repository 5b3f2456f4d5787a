package parcel

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// Package constraints shared with the external validation layer. The core
// re-checks them so a misbehaving caller cannot persist an invalid parcel.
const (
	MaxWeightKg          = 100.0
	MaxDescriptionLength = 500
)

// ErrPackageDetailsAreNotConstructed is returned when PackageDetails were not
// created via NewPackageDetails.
var ErrPackageDetailsAreNotConstructed = errs.NewValueIsRequiredError(
	"PackageDetails must be created via NewPackageDetails")

// PackageType classifies the contents of a parcel.
type PackageType int

const (
	// UnknownPackageType represents an invalid or undefined package type.
	UnknownPackageType PackageType = iota

	// Document is a flat paper shipment.
	Document

	// Package is a regular boxed shipment.
	Package

	// Fragile is a shipment requiring careful handling.
	Fragile
)

func getPackageTypeStrings() map[PackageType]string {
	return map[PackageType]string{
		UnknownPackageType: "UNKNOWN",
		Document:           "DOCUMENT",
		Package:            "PACKAGE",
		Fragile:            "FRAGILE",
	}
}

func getValidPackageTypeStrings() map[PackageType]string {
	//nolint:exhaustive // UnknownPackageType is intentionally excluded as it's invalid
	return map[PackageType]string{
		Document: "DOCUMENT",
		Package:  "PACKAGE",
		Fragile:  "FRAGILE",
	}
}

// PackageTypeFromString parses a wire-format package type name.
func PackageTypeFromString(s string) (PackageType, error) {
	for t, str := range getValidPackageTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return UnknownPackageType, errs.NewValueIsInvalidErrorWithCause("packageType",
		fmt.Errorf("%q is not a valid package type", s))
}

// Validate checks if the PackageType value is valid.
func (t PackageType) Validate() error {
	if _, ok := getValidPackageTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("packageType",
			fmt.Errorf("%d is not a valid package type", t))
	}
	return nil
}

// String returns the wire-format name of the package type, e.g. "FRAGILE".
func (t PackageType) String() string {
	if str, ok := getPackageTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}

// PackageDetails is a value object describing what is being shipped.
// Weight is in kilograms, must be positive and at most MaxWeightKg.
// Description is optional and bounded by MaxDescriptionLength.
type PackageDetails struct {
	packageType PackageType
	weight      float64
	description string

	guard guard.ConstructorGuard
}

// NewPackageDetails creates validated package details.
func NewPackageDetails(packageType PackageType, weight float64, description string) (PackageDetails, error) {
	if err := packageType.Validate(); err != nil {
		return PackageDetails{}, err
	}

	if weight <= 0 || weight > MaxWeightKg {
		return PackageDetails{}, errs.NewValueIsOutOfRangeError("weight", weight, 0, MaxWeightKg)
	}

	if len(description) > MaxDescriptionLength {
		return PackageDetails{}, errs.NewValueIsOutOfRangeError(
			"description length", len(description), 0, MaxDescriptionLength)
	}

	return PackageDetails{
		packageType: packageType,
		weight:      weight,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the value was created through NewPackageDetails.
func (d PackageDetails) Validate() error {
	return d.guard.Validate(ErrPackageDetailsAreNotConstructed)
}

// Type returns the package classification.
func (d PackageDetails) Type() PackageType {
	return d.packageType
}

// Weight returns the package weight in kilograms.
func (d PackageDetails) Weight() float64 {
	return d.weight
}

// Description returns the optional free-text description.
func (d PackageDetails) Description() string {
	return d.description
}
