package solar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	meeussolar "github.com/soniakeys/meeus/v3/solar"
)

// Position is the apparent solar position for one instant and observer,
// with a clear-sky GHI estimate attached.
type Position struct {
	DeclinationDeg float64 `json:"declination_deg"` // apparent declination of the Sun
	EqOfTimeMin    float64 `json:"eq_of_time_min"`  // equation of time in minutes
	HourAngleDeg   float64 `json:"hour_angle_deg"`  // angular offset from local solar noon
	ElevationDeg   float64 `json:"elevation_deg"`   // altitude of the Sun above the horizon
	AzimuthDeg     float64 `json:"azimuth_deg"`     // compass bearing of the Sun, 0 = north
	CosZenith      float64 `json:"cos_zenith"`
	AirMass        float64 `json:"air_mass"`   // Kasten-Young relative air mass, 0 below the horizon
	Irradiance     float64 `json:"irradiance"` // clear-sky GHI in W/m², 0 below the horizon
}

// fixAngle normalizes an angle to the range [0, 360) degrees
func fixAngle(a float64) float64 {
	return math.Mod(a+360, 360)
}

// equationOfTime returns the difference between apparent and mean solar
// time in minutes for a UTC instant, from the Sun's mean longitude, mean
// anomaly, orbital eccentricity, and the obliquity of the ecliptic.
func equationOfTime(t time.Time) float64 {
	jd := julian.TimeToJD(t.UTC())
	T := (jd - 2451545.0) / 36525.0 // Julian centuries since J2000.0

	L0 := fixAngle(280.46646 + T*(36000.76983+T*0.0003032))
	M := fixAngle(357.52911 + T*(35999.05029-T*0.0001537))
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)
	eps0 := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60

	y := math.Tan(degToRad(eps0) / 2)
	y *= y
	return radToDeg(y*math.Sin(degToRad(2*L0))-
		2*e*math.Sin(degToRad(M))+
		4*e*y*math.Sin(degToRad(M))*math.Cos(degToRad(2*L0))-
		0.5*y*y*math.Sin(degToRad(4*L0))-
		1.25*e*e*math.Sin(degToRad(2*M))) * 4 // 4 minutes per degree
}

// PositionAt computes the apparent solar position for a UTC instant at the
// given latitude and longitude in decimal degrees (east positive). Unlike
// the fixed-grid ClearSkyIrradiance model, the irradiance estimate here uses
// the Kasten-Young air mass for the beam attenuation exponent.
func PositionAt(t time.Time, latitude, longitude float64) Position {
	t = t.UTC()
	jd := julian.TimeToJD(t)
	_, dec := meeussolar.ApparentEquatorial(jd)
	decRad := dec.Rad()

	// True solar time from the mean clock time, longitude offset
	// (4 min/degree), and the equation of time.
	eqTimeMin := equationOfTime(t)
	utcMin := float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60.0
	tst := utcMin + 4*longitude + eqTimeMin
	// Keep true solar time within one day so the hour angle lands in
	// [-180, 180); eastern longitudes can push the raw sum past 1440.
	tst = math.Mod(math.Mod(tst, 1440)+1440, 1440)
	haDeg := tst/4 - 180
	haRad := degToRad(haDeg)

	latRad := degToRad(latitude)
	cosZen := math.Sin(latRad)*math.Sin(decRad) + math.Cos(latRad)*math.Cos(decRad)*math.Cos(haRad)
	zenRad := math.Acos(cosZen)
	elDeg := 90 - radToDeg(zenRad)

	pos := Position{
		DeclinationDeg: dec.Deg(),
		EqOfTimeMin:    eqTimeMin,
		HourAngleDeg:   haDeg,
		ElevationDeg:   elDeg,
		CosZenith:      cosZen,
	}

	if cosZen <= 0 {
		return pos
	}

	azNum := math.Sin(decRad) - math.Sin(latRad)*cosZen
	azDen := math.Cos(latRad) * math.Sin(zenRad)
	// Rounding near transit can push the ratio just past ±1
	azDeg := radToDeg(math.Acos(math.Max(-1, math.Min(1, azNum/azDen))))
	if haDeg > 0 {
		azDeg = 360 - azDeg
	}
	pos.AzimuthDeg = azDeg

	m := AirMass(zenRad)
	pos.AirMass = m

	i0 := ExtraterrestrialIrradiance(t.YearDay())
	dni := i0 * math.Pow(beamTransmittance, m)
	pos.Irradiance = dni*cosZen + i0*diffuseTransmittance

	return pos
}
