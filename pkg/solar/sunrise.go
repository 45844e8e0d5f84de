package solar

import (
	"math"
	"time"
)

// SunTimes holds sunrise and sunset as minutes from midnight UTC for one
// day. PolarDay and PolarNight flag latitudes where the Sun never sets or
// never rises; Sunrise and Sunset are meaningless when either is set.
type SunTimes struct {
	Sunrise    int  `json:"sunrise_utc_min"`
	Sunset     int  `json:"sunset_utc_min"`
	PolarDay   bool `json:"polar_day"`
	PolarNight bool `json:"polar_night"`
}

// RiseSet computes sunrise and sunset for the given day of year at the
// specified latitude and longitude in decimal degrees (east positive).
func RiseSet(dayOfYear int, latitude, longitude float64) SunTimes {
	decRad := Declination(dayOfYear)
	latRad := degToRad(latitude)

	// At sunrise and sunset the Sun sits on the horizon:
	// cos(H) = -tan(lat) * tan(declination)
	cosH := -math.Tan(latRad) * math.Tan(decRad)
	if cosH < -1.0 {
		return SunTimes{Sunrise: -1, Sunset: -1, PolarDay: true}
	}
	if cosH > 1.0 {
		return SunTimes{Sunrise: -1, Sunset: -1, PolarNight: true}
	}

	hourAngleMin := radToDeg(math.Acos(cosH)) * 4.0 // 4 minutes per degree

	// Solar noon in UTC, shifted by longitude and the equation of time.
	refTime := time.Date(time.Now().UTC().Year(), 1, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, dayOfYear-1)
	solarNoonUTC := 720.0 - longitude*4.0 - equationOfTime(refTime)

	sunrise := math.Mod(solarNoonUTC-hourAngleMin+1440, 1440)
	sunset := math.Mod(solarNoonUTC+hourAngleMin+1440, 1440)

	return SunTimes{
		Sunrise: int(math.Round(sunrise)),
		Sunset:  int(math.Round(sunset)),
	}
}

// FormatSunTime converts UTC minutes from midnight to a clock string in the
// given timezone location. Returns "" for the polar sentinel value.
func FormatSunTime(utcMinutes int, loc *time.Location) string {
	if utcMinutes < 0 {
		return ""
	}
	t := time.Date(2000, 1, 1, utcMinutes/60, utcMinutes%60, 0, 0, time.UTC)
	return t.In(loc).Format("3:04 PM")
}
