// Package tz maps geographic points to IANA timezones.
package tz

import (
	"errors"
	"fmt"
	"time"

	"github.com/ringsaturn/tzf"
)

// ErrTimezoneUnresolved is returned for coordinates with no timezone
// (open ocean, out-of-range values). Callers substitute a declared
// default timezone; the resolver never guesses.
var ErrTimezoneUnresolved = errors.New("timezone unresolved for coordinate")

// Resolver answers point-in-polygon timezone lookups. Pure and
// deterministic for a fixed coordinate.
type Resolver interface {
	Resolve(latitude, longitude float64) (*time.Location, error)
}

type finderResolver struct {
	finder tzf.F
}

// NewResolver loads the embedded timezone shape data once; the returned
// Resolver is safe for concurrent use.
func NewResolver() (Resolver, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("load timezone data: %w", err)
	}
	return &finderResolver{finder: finder}, nil
}

func (r *finderResolver) Resolve(latitude, longitude float64) (*time.Location, error) {
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return nil, fmt.Errorf("%w: (%f, %f)", ErrTimezoneUnresolved, latitude, longitude)
	}

	name := r.finder.GetTimezoneName(longitude, latitude)
	if name == "" {
		return nil, fmt.Errorf("%w: (%f, %f)", ErrTimezoneUnresolved, latitude, longitude)
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrTimezoneUnresolved, name, err)
	}
	return loc, nil
}
