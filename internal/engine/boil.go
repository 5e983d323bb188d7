package engine

import (
	"time"

	"github.com/hammamikhairi/ottobrew/internal/domain"
)

// Physical constants of the heating model.
const (
	// WaterHeatCapacity is the specific heat of water in J/(kg·°C).
	WaterHeatCapacity = 4200

	// TemperatureDelta is the effective temperature rise in °C.
	TemperatureDelta = 80

	// Fixed per-unit additions, in milliseconds per ml or g.
	milkMillisPerML  = 20
	coffeeMillisPerG = 30
	sugarMillisPerG  = 10
)

// Default bounds applied to BoilTime to get the brew duration.
const (
	DefaultMinBrew = 2 * time.Second
	DefaultMaxBrew = 5 * time.Second
)

// DefaultPower is the heating power of a standard machine, in watts.
const DefaultPower = 20000

// BoilTime returns the simulated heating time for a recipe on a machine
// of the given power. Water is counted as grams, one per millilitre.
func BoilTime(r domain.Recipe, powerWatts float64) time.Duration {
	ms := r.Water*WaterHeatCapacity*TemperatureDelta/powerWatts +
		r.Milk*milkMillisPerML +
		r.Coffee*coffeeMillisPerG +
		r.Sugar*sugarMillisPerG
	return time.Duration(ms * float64(time.Millisecond))
}

// ClampDuration forces d into [min, max].
func ClampDuration(d, min, max time.Duration) time.Duration {
	if d < min {
		return min
	}
	if d > max {
		return max
	}
	return d
}
