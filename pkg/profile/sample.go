package profile

import (
	"errors"
	"fmt"
)

// Profile is a sampled meridian profile together with everything a
// profile consumer needs to revolve it.
type Profile struct {
	Name        string       `json:"name"`
	Kind        Kind         `json:"kind"`
	Segments    int          `json:"segments"`
	Polyline    *Polyline    `json:"polyline"`
	Shape       Shape        `json:"-"` // after auto-correction
	Corrections []Correction `json:"corrections,omitempty"`
}

// domainCorrector is implemented by shapes that know a deterministic fix
// for a domain error raised while sampling.
type domainCorrector interface {
	correctDomain() (Shape, Correction)
}

// Sample validates s, applies auto-corrections and samples its profile.
//
// Errors:
//   - *InvalidParameterError when a value violates a documented bound
//   - *ConfigurationError when the geometry is impossible even after one
//     corrective retry; it wraps the final *DomainError
//
// No partial profile is ever returned.
func Sample(s Shape) (*Profile, error) {
	if err := Validate(s); err != nil {
		return nil, err
	}
	s, corrections := AutoCorrect(s)

	pl, err := s.sample()
	var de *DomainError
	if errors.As(err, &de) {
		dc, ok := s.(domainCorrector)
		if !ok {
			return nil, promote(s, de)
		}
		var c Correction
		s, c = dc.correctDomain()
		corrections = append(corrections, c)
		pl, err = s.sample()
		if errors.As(err, &de) {
			return nil, promote(s, de)
		}
	}
	if err != nil {
		return nil, err
	}
	if err := pl.Validate(); err != nil {
		return nil, fmt.Errorf("profile: %s: %w", s.Name(), err)
	}

	return &Profile{
		Name:        s.Name(),
		Kind:        s.Kind(),
		Segments:    s.SegmentCount(),
		Polyline:    pl,
		Shape:       s,
		Corrections: corrections,
	}, nil
}

func promote(s Shape, de *DomainError) error {
	field, value, bound := s.critical()
	return &ConfigurationError{
		Shape: s.Name(),
		Field: field,
		Value: value,
		Bound: bound,
		Err:   de,
	}
}
