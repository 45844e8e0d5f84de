package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/solartools/clearsky/pkg/solar"
)

func main() {
	var (
		timeStr   = flag.String("time", "", "UTC time to calculate position for (RFC3339 format, e.g., 2024-01-15T12:00:00Z)")
		latitude  = flag.Float64("lat", 42.36, "Latitude in decimal degrees")
		longitude = flag.Float64("lon", -71.06, "Longitude in decimal degrees, east positive")
	)
	flag.Parse()

	var t time.Time
	if *timeStr == "" {
		t = time.Now().UTC()
	} else {
		var err error
		t, err = time.Parse(time.RFC3339, *timeStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing time: %v\n", err)
			os.Exit(1)
		}
	}

	pos := solar.PositionAt(t, *latitude, *longitude)

	fmt.Printf("Solar Position for %s at (%.2f, %.2f)\n", t.Format(time.RFC3339), *latitude, *longitude)
	fmt.Printf("  Declination:    %.2f°\n", pos.DeclinationDeg)
	fmt.Printf("  Eq. of Time:    %.1f min\n", pos.EqOfTimeMin)
	fmt.Printf("  Hour Angle:     %.2f°\n", pos.HourAngleDeg)
	fmt.Printf("  Elevation:      %.2f°\n", pos.ElevationDeg)
	if pos.CosZenith > 0 {
		fmt.Printf("  Azimuth:        %.2f°\n", pos.AzimuthDeg)
		fmt.Printf("  Air Mass:       %.2f\n", pos.AirMass)
		fmt.Printf("  Clear-Sky GHI:  %.1f W/m²\n", pos.Irradiance)
	} else {
		fmt.Printf("  Sun is below the horizon\n")
	}
}
