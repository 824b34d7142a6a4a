package design

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/chazu/ogive/pkg/profile"
)

// ValidationSeverity indicates whether a validation finding blocks
// tessellation or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks tessellation of the part
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	PartID   PartID             // which part has the problem (zero if design-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.PartID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] part %s: %s", e.Severity, e.PartID.Short(), e.Message)
}

// ValidationResult bundles errors (blocking) and warnings (advisory).
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether there are no blocking errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate runs the structural and parameter checks on d and returns every
// finding. An empty slice means the design is valid. Validate never
// mutates the design.
func Validate(d *Design) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateReferences(d)...)
	errs = append(errs, validateNames(d)...)
	errs = append(errs, validateShapes(d)...)
	errs = append(errs, validatePlacement(d)...)
	return errs
}

// ValidateAll runs Validate and separates errors from warnings.
func ValidateAll(d *Design) ValidationResult {
	var result ValidationResult
	for _, e := range Validate(d) {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, e)
		} else {
			result.Errors = append(result.Errors, e)
		}
	}
	return result
}

// validateReferences checks that Order and NameIndex point at parts that
// exist and that every part is ordered exactly once.
func validateReferences(d *Design) []ValidationError {
	var errs []ValidationError

	seen := make(map[PartID]bool, len(d.Order))
	for _, id := range d.Order {
		if _, ok := d.Parts[id]; !ok {
			errs = append(errs, ValidationError{
				PartID:   id,
				Message:  fmt.Sprintf("order references missing part %s", id.Short()),
				Severity: SeverityError,
			})
		}
		if seen[id] {
			errs = append(errs, ValidationError{
				PartID:   id,
				Message:  "part is listed more than once",
				Severity: SeverityError,
			})
		}
		seen[id] = true
	}
	for _, id := range sortedIDs(d) {
		if !seen[id] {
			errs = append(errs, ValidationError{
				PartID:   id,
				Message:  "part is not in the definition order",
				Severity: SeverityError,
			})
		}
	}
	for name, id := range d.NameIndex {
		if _, ok := d.Parts[id]; !ok {
			errs = append(errs, ValidationError{
				PartID:   id,
				Message:  fmt.Sprintf("name %q references missing part", name),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateNames requires every part to carry a unique, non-empty name.
func validateNames(d *Design) []ValidationError {
	var errs []ValidationError
	owners := make(map[string]PartID)
	for _, p := range d.Ordered() {
		if p.Name == "" {
			errs = append(errs, ValidationError{
				PartID:   p.ID,
				Message:  "part has no name",
				Severity: SeverityError,
			})
			continue
		}
		if prev, ok := owners[p.Name]; ok && prev != p.ID {
			errs = append(errs, ValidationError{
				PartID:   p.ID,
				Message:  fmt.Sprintf("duplicate part name %q", p.Name),
				Severity: SeverityError,
			})
			continue
		}
		owners[p.Name] = p.ID
	}
	return errs
}

// validateShapes checks each shape against its documented bounds and
// reports the auto-corrections sampling will apply as warnings.
func validateShapes(d *Design) []ValidationError {
	var errs []ValidationError
	for _, p := range d.Ordered() {
		if p.Shape == nil {
			errs = append(errs, ValidationError{
				PartID:   p.ID,
				Message:  "part has no shape",
				Severity: SeverityError,
			})
			continue
		}
		if err := profile.Validate(p.Shape); err != nil {
			var ie *profile.InvalidParameterError
			msg := err.Error()
			if errors.As(err, &ie) {
				msg = fmt.Sprintf("%s %g %s", ie.Field, ie.Value, ie.Reason)
			}
			errs = append(errs, ValidationError{
				PartID:   p.ID,
				Message:  fmt.Sprintf("%s: %s", p.Name, msg),
				Severity: SeverityError,
			})
			continue
		}
		_, corrections := profile.AutoCorrect(p.Shape)
		for _, c := range corrections {
			errs = append(errs, ValidationError{
				PartID:   p.ID,
				Message:  fmt.Sprintf("%s: %s", p.Name, c),
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

// validatePlacement rejects non-finite rotations and translations.
func validatePlacement(d *Design) []ValidationError {
	var errs []ValidationError
	for _, p := range d.Ordered() {
		if p.Rotation != nil && !p.Rotation.IsFinite() {
			errs = append(errs, ValidationError{
				PartID:   p.ID,
				Message:  fmt.Sprintf("rotation %s is not finite", p.Rotation),
				Severity: SeverityError,
			})
		}
		if p.Translation != nil && !p.Translation.IsFinite() {
			errs = append(errs, ValidationError{
				PartID:   p.ID,
				Message:  fmt.Sprintf("translation %s is not finite", p.Translation),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// sortedIDs returns the part IDs in a deterministic order.
func sortedIDs(d *Design) []PartID {
	ids := make([]PartID, 0, len(d.Parts))
	for id := range d.Parts {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b PartID) int {
		return bytes.Compare(a[:], b[:])
	})
	return ids
}
