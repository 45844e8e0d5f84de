// Package solar provides clear-sky solar irradiance estimates from solar
// geometry and fixed atmospheric transmittance coefficients. The core model
// maps (latitude, day-of-year) to an hourly global horizontal irradiance
// profile sampled at local solar hours 6:00 through 18:00.
package solar

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// Constants
const (
	solarConstant = 1367.0 // Solar constant in W/m², normal-incidence irradiance at the top of the atmosphere

	beamTransmittance    = 0.7 // Atmospheric transmittance of the direct beam at unit air mass
	diffuseTransmittance = 0.1 // Fraction of extraterrestrial irradiance reaching the ground as diffuse
)

// Hourly sample window, local solar time. Noon is sample index 6.
const (
	firstHour = 6
	lastHour  = 18
)

// degToRad converts an angle from degrees to radians for trigonometric calculations
func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// radToDeg converts an angle from radians to degrees for human-readable output
func radToDeg(rad float64) float64 {
	return rad * (180.0 / math.Pi)
}

// Declination returns the solar declination in radians for a day of year
// (1-365 or 366), the angle between the Sun's rays and the equatorial plane.
// Approximated with a sinusoid peaking at the solstices (Cooper's formula).
// Periodic in the day of year; out-of-range inputs wrap rather than fail.
func Declination(dayOfYear int) float64 {
	return degToRad(23.45) * math.Sin(degToRad(360.0*(284.0+float64(dayOfYear))/365.0))
}

// ExtraterrestrialIrradiance returns the normal-incidence irradiance in W/m²
// at the top of the atmosphere for a day of year, adjusting the solar
// constant for the ~3.3% annual variation in Earth-Sun distance.
func ExtraterrestrialIrradiance(dayOfYear int) float64 {
	return solarConstant * (1 + 0.033*math.Cos(2*math.Pi*float64(dayOfYear)/365.0))
}

// AirMass returns the Kasten-Young relative air mass for a solar zenith
// angle given in radians. Valid while the Sun is at or above the horizon;
// beyond ~96° zenith the empirical term leaves its fitted domain.
func AirMass(zenithRad float64) float64 {
	zenithDeg := radToDeg(zenithRad)
	return 1.0 / (math.Cos(zenithRad) + 0.50572*math.Pow(96.07995-zenithDeg, -1.6364))
}

// SampleHours returns the fixed hourly sample grid, local solar hours 6
// through 18 inclusive.
func SampleHours() []int {
	hours := make([]int, 0, lastHour-firstHour+1)
	for h := firstHour; h <= lastHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// ClearSkyIrradiance computes hourly clear-sky global horizontal irradiance
// for a latitude in decimal degrees and a day of year. It returns the sample
// hours (always 6..18) and one GHI value in W/m² per hour.
//
// For each hour the solar zenith angle follows from latitude, declination,
// and the hour angle (15° per hour from solar noon). The direct beam is
// attenuated exponentially using 1/cos(θz) as the air-mass proxy; the
// diffuse component is a constant fraction of extraterrestrial irradiance.
// When the Sun is at or below the horizon the beam term is dropped entirely
// and the sample is the diffuse floor, keeping every value finite.
func ClearSkyIrradiance(latitude float64, dayOfYear int) (hours []int, ghi []float64) {
	latRad := degToRad(latitude)
	decRad := Declination(dayOfYear)
	i0 := ExtraterrestrialIrradiance(dayOfYear)
	dhi := i0 * diffuseTransmittance

	hours = SampleHours()
	ghi = make([]float64, len(hours))

	for i, h := range hours {
		// Hour angle: 0 at solar noon, negative before, positive after
		haRad := degToRad(15.0 * float64(h-12))

		cosZen := math.Sin(latRad)*math.Sin(decRad) + math.Cos(latRad)*math.Cos(decRad)*math.Cos(haRad)
		if cosZen <= 0 {
			// Sun at or below the horizon: diffuse only. An explicit branch
			// avoids the 0×Inf indeterminate form that 0.7^(1/0) would feed
			// into the beam term.
			ghi[i] = dhi
			continue
		}

		dni := i0 * math.Pow(beamTransmittance, 1.0/cosZen)
		ghi[i] = dni*cosZen + dhi
	}

	return hours, ghi
}

// Profile is a computed hourly irradiance series for one location and day.
type Profile struct {
	Latitude  float64   `json:"latitude"`
	DayOfYear int       `json:"day_of_year"`
	Hours     []int     `json:"hours"`
	GHI       []float64 `json:"ghi"`
}

// NewProfile computes the clear-sky profile for a latitude and day of year.
func NewProfile(latitude float64, dayOfYear int) Profile {
	hours, ghi := ClearSkyIrradiance(latitude, dayOfYear)
	return Profile{
		Latitude:  latitude,
		DayOfYear: dayOfYear,
		Hours:     hours,
		GHI:       ghi,
	}
}

// Peak returns the sample hour with the highest GHI and its value.
func (p Profile) Peak() (hour int, ghi float64) {
	if len(p.GHI) == 0 {
		return 0, 0
	}
	i := floats.MaxIdx(p.GHI)
	return p.Hours[i], p.GHI[i]
}

// DailyEnergy returns the energy under the sampled curve in kWh/m²,
// integrating the hourly GHI samples trapezoidally.
func (p Profile) DailyEnergy() float64 {
	if len(p.GHI) < 2 {
		return 0
	}
	xs := make([]float64, len(p.Hours))
	for i, h := range p.Hours {
		xs[i] = float64(h)
	}
	return integrate.Trapezoidal(xs, p.GHI) / 1000.0
}
