package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/solartools/clearsky/internal/archive"
	"github.com/solartools/clearsky/pkg/chart"
	"github.com/solartools/clearsky/pkg/solar"
)

const defaultTitle = "Clear-Sky Global Horizontal Irradiance (Boston, Feb 21)"

func main() {
	var (
		latitude    = flag.Float64("lat", 42.36, "Latitude in decimal degrees")
		dayOfYear   = flag.Int("doy", 52, "Day of year (1-366)")
		dateStr     = flag.String("date", "", "Calendar date (YYYY-MM-DD); overrides -doy")
		title       = flag.String("title", "", "Chart title (default derived from inputs)")
		output      = flag.String("output", "ghi.png", "Chart output file; empty to skip rendering")
		archivePath = flag.String("archive", "", "Optional SQLite archive to record this run in")
		showSun     = flag.Bool("sun", false, "Also print sunrise and sunset (requires -lon)")
		longitude   = flag.Float64("lon", -71.06, "Longitude in decimal degrees, used with -sun")
	)
	flag.Parse()

	doy := *dayOfYear
	if *dateStr != "" {
		d, err := time.Parse("2006-01-02", *dateStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			os.Exit(1)
		}
		doy = d.YearDay()
	}

	chartTitle := *title
	if chartTitle == "" {
		if *latitude == 42.36 && doy == 52 {
			chartTitle = defaultTitle
		} else {
			chartTitle = fmt.Sprintf("Clear-Sky GHI (lat %.2f, day %d)", *latitude, doy)
		}
	}

	p := solar.NewProfile(*latitude, doy)

	fmt.Printf("%s\n", chartTitle)
	fmt.Printf("  Latitude:     %.2f°\n", p.Latitude)
	fmt.Printf("  Day of year:  %d\n", p.DayOfYear)
	fmt.Printf("  Declination:  %.2f°\n", solar.Declination(p.DayOfYear)*180/math.Pi)
	fmt.Println()
	fmt.Printf("  %-6s %12s\n", "Hour", "GHI (W/m²)")
	for i, h := range p.Hours {
		fmt.Printf("  %-6d %12.1f\n", h, p.GHI[i])
	}
	fmt.Println()

	peakHour, peakGHI := p.Peak()
	fmt.Printf("  Peak:         %.1f W/m² at %d:00\n", peakGHI, peakHour)
	fmt.Printf("  Daily energy: %.2f kWh/m²\n", p.DailyEnergy())

	if *showSun {
		st := solar.RiseSet(p.DayOfYear, *latitude, *longitude)
		switch {
		case st.PolarDay:
			fmt.Printf("  Sun:          above the horizon all day\n")
		case st.PolarNight:
			fmt.Printf("  Sun:          below the horizon all day\n")
		default:
			fmt.Printf("  Sunrise:      %s UTC\n", solar.FormatSunTime(st.Sunrise, time.UTC))
			fmt.Printf("  Sunset:       %s UTC\n", solar.FormatSunTime(st.Sunset, time.UTC))
		}
	}

	if *output != "" {
		xs := make([]float64, len(p.Hours))
		for i, h := range p.Hours {
			xs[i] = float64(h)
		}
		renderer := chart.NewPNGRenderer(*output)
		err := renderer.Render(chart.Series{
			Title:  chartTitle,
			XLabel: "Hour of Day",
			YLabel: "GHI (W/m²)",
			X:      xs,
			Y:      p.GHI,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering chart: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nChart written to %s\n", *output)
	}

	if *archivePath != "" {
		store, err := archive.Open(*archivePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening archive: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		id, err := store.Save(p, chartTitle)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error archiving profile: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Profile archived as %s\n", id)
	}
}
