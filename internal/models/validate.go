// ABOUTME: Validation rules for leaf measurements, applied before any write.
// ABOUTME: Time, velocity, wind, fly, and intensity bounds live here.
package models

import "fmt"

// Plausibility bounds for measured values.
const (
	MinTimeSec  = 1.0   // sprint/race times below this are implausible
	MaxTimeSec  = 120.0 // sprint/race times above this are implausible
	MinVelocity = 0.1   // m/s, lift peak velocity lower bound when measured
	MaxVelocity = 3.0   // m/s, lift peak velocity upper bound when measured
	MaxWind     = 10.0  // m/s, absolute wind reading bound for outdoor races
)

// ValidateSprintRep checks a sprint rep before it is written.
func ValidateSprintRep(r *SprintRep) error {
	if r.Distance <= 0 {
		return fmt.Errorf("distance must be positive, got %g", r.Distance)
	}
	if err := validateTime(r.TimeSec); err != nil {
		return err
	}
	if r.Timing != TimingHand && r.Timing != TimingFAT {
		return fmt.Errorf("invalid timing tag: %q", r.Timing)
	}
	if r.RestSec < 0 {
		return fmt.Errorf("rest duration must not be negative, got %d", r.RestSec)
	}
	if r.IsFly {
		if r.FlyIn == nil {
			return fmt.Errorf("fly rep requires a fly-in distance (10, 20, or 30)")
		}
		if !IsValidFlyIn(*r.FlyIn) {
			return fmt.Errorf("invalid fly-in distance %d: must be 10, 20, or 30", *r.FlyIn)
		}
	} else if r.FlyIn != nil {
		return fmt.Errorf("fly-in distance set on a non-fly rep")
	}
	if err := validateIntensity(r.Intensity); err != nil {
		return err
	}
	if r.WorkType != WorkSprint && r.WorkType != WorkTempo {
		return fmt.Errorf("invalid work type: %q", r.WorkType)
	}
	return nil
}

// ValidateLiftRep checks a lift rep before it is written. A nil peak velocity
// is valid and means "not measured".
func ValidateLiftRep(r *LiftRep) error {
	if r.PeakVelocity == nil {
		return nil
	}
	v := *r.PeakVelocity
	if v <= 0 {
		return fmt.Errorf("peak velocity must be positive, got %g", v)
	}
	if v < MinVelocity || v > MaxVelocity {
		return fmt.Errorf("peak velocity %.2f m/s outside plausible range %.1f-%.1f", v, MinVelocity, MaxVelocity)
	}
	return nil
}

// ValidateLiftSet checks lift set fields before they are written.
func ValidateLiftSet(exercise string, load float64) error {
	if exercise == "" {
		return fmt.Errorf("exercise name must not be empty")
	}
	if load <= 0 {
		return fmt.Errorf("load must be positive, got %g", load)
	}
	return nil
}

// ValidateRace checks a race against the parent meet's venue before it is
// written. Wind is rejected outright for indoor meets.
func ValidateRace(r *Race, venue Venue) error {
	if r.Distance <= 0 {
		return fmt.Errorf("distance must be positive, got %g", r.Distance)
	}
	if !IsValidRound(string(r.Round)) {
		return fmt.Errorf("invalid round: %q", r.Round)
	}
	if err := validateTime(r.TimeSec); err != nil {
		return err
	}
	if r.Wind != nil {
		if venue == VenueIndoor {
			return fmt.Errorf("wind reading not allowed for an indoor meet")
		}
		if *r.Wind < -MaxWind || *r.Wind > MaxWind {
			return fmt.Errorf("wind %.1f m/s outside plausible range ±%.0f", *r.Wind, MaxWind)
		}
	}
	if r.Place != nil && *r.Place < 1 {
		return fmt.Errorf("place must be at least 1, got %d", *r.Place)
	}
	return nil
}

// ValidateAuxEntry checks an auxiliary entry before it is written.
func ValidateAuxEntry(e *AuxEntry) error {
	if !IsValidAuxCategory(string(e.Category)) {
		return fmt.Errorf("invalid auxiliary category: %q", e.Category)
	}
	if e.Name == "" {
		return fmt.Errorf("entry name must not be empty")
	}
	if !IsValidAuxMetric(string(e.Metric)) {
		return fmt.Errorf("invalid volume metric: %q", e.Metric)
	}
	if e.MetricValue <= 0 {
		return fmt.Errorf("metric value must be positive, got %g", e.MetricValue)
	}
	return validateIntensity(e.Intensity)
}

func validateTime(t float64) error {
	if t <= 0 {
		return fmt.Errorf("time must be positive, got %g", t)
	}
	if t < MinTimeSec || t > MaxTimeSec {
		return fmt.Errorf("time %.2fs outside plausible range %.1f-%.1fs", t, MinTimeSec, MaxTimeSec)
	}
	return nil
}

func validateIntensity(pct *int) error {
	if pct == nil {
		return nil
	}
	if *pct < 0 || *pct > 100 {
		return fmt.Errorf("intensity must be 0-100, got %d", *pct)
	}
	return nil
}
