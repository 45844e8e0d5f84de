package solar

import (
	"math"
	"testing"
)

func TestDeclination(t *testing.T) {
	tests := []struct {
		name        string
		dayOfYear   int
		expectedRad float64
		epsilon     float64
	}{
		{
			name:        "summer solstice maximum (day 172)",
			dayOfYear:   172,
			expectedRad: 0.4093, // ~23.45°
			epsilon:     0.001,
		},
		{
			name:        "winter solstice minimum (day 355)",
			dayOfYear:   355,
			expectedRad: -0.4093,
			epsilon:     0.001,
		},
		{
			name:        "spring equinox near zero (day 80)",
			dayOfYear:   80,
			expectedRad: 0.0,
			epsilon:     0.02,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Declination(tt.dayOfYear)
			if math.Abs(got-tt.expectedRad) > tt.epsilon {
				t.Errorf("Declination(%d) = %.4f rad, expected %.4f ± %.4f",
					tt.dayOfYear, got, tt.expectedRad, tt.epsilon)
			}
		})
	}
}

func TestDeclinationPeriodic(t *testing.T) {
	for _, day := range []int{1, 52, 100, 200, 300, 365} {
		if diff := math.Abs(Declination(day) - Declination(day+365)); diff > 1e-9 {
			t.Errorf("Declination not periodic at day %d: diff = %g", day, diff)
		}
	}
}

func TestDeclinationBounded(t *testing.T) {
	limit := degToRad(23.45) + 1e-12
	for day := 1; day <= 366; day++ {
		if d := math.Abs(Declination(day)); d > limit {
			t.Errorf("|Declination(%d)| = %.6f rad exceeds 23.45°", day, d)
		}
	}
}

func TestExtraterrestrialIrradiance(t *testing.T) {
	tests := []struct {
		name      string
		dayOfYear int
		expected  float64
		epsilon   float64
	}{
		{
			name:      "perihelion-adjacent maximum (day 0)",
			dayOfYear: 0,
			expected:  1367.0 * 1.033, // ≈1412.1 W/m²
			epsilon:   0.1,
		},
		{
			name:      "aphelion-adjacent minimum (day 182)",
			dayOfYear: 182,
			expected:  1367.0 * 0.967,
			epsilon:   1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtraterrestrialIrradiance(tt.dayOfYear)
			if math.Abs(got-tt.expected) > tt.epsilon {
				t.Errorf("ExtraterrestrialIrradiance(%d) = %.2f, expected %.2f ± %.2f",
					tt.dayOfYear, got, tt.expected, tt.epsilon)
			}
		})
	}
}

func TestAirMass(t *testing.T) {
	tests := []struct {
		name      string
		zenithDeg float64
		expected  float64
		epsilon   float64
	}{
		{name: "overhead sun", zenithDeg: 0, expected: 1.0, epsilon: 0.001},
		{name: "60 degrees", zenithDeg: 60, expected: 2.0, epsilon: 0.01},
		{name: "85 degrees", zenithDeg: 85, expected: 10.3, epsilon: 0.1},
		{name: "horizon", zenithDeg: 90, expected: 37.9, epsilon: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AirMass(degToRad(tt.zenithDeg))
			if math.Abs(got-tt.expected) > tt.epsilon {
				t.Errorf("AirMass(%.0f°) = %.3f, expected %.3f ± %.3f",
					tt.zenithDeg, got, tt.expected, tt.epsilon)
			}
		})
	}
}

func TestClearSkyIrradianceHourGrid(t *testing.T) {
	for _, tc := range []struct {
		latitude  float64
		dayOfYear int
	}{
		{0, 80}, {42.36, 52}, {-33.9, 172}, {70, 355}, {89.9, 1},
	} {
		hours, ghi := ClearSkyIrradiance(tc.latitude, tc.dayOfYear)
		if len(hours) != 13 || len(ghi) != 13 {
			t.Fatalf("lat=%.2f doy=%d: got %d hours, %d values, expected 13 each",
				tc.latitude, tc.dayOfYear, len(hours), len(ghi))
		}
		for i, h := range hours {
			if h != 6+i {
				t.Errorf("lat=%.2f doy=%d: hours[%d] = %d, expected %d",
					tc.latitude, tc.dayOfYear, i, h, 6+i)
			}
		}
	}
}

func TestClearSkyIrradianceEquatorEquinox(t *testing.T) {
	_, ghi := ClearSkyIrradiance(0, 80)

	noon := ghi[6]
	if noon <= ghi[0] || noon <= ghi[12] {
		t.Errorf("noon GHI %.1f not greater than 6:00 (%.1f) and 18:00 (%.1f)",
			noon, ghi[0], ghi[12])
	}
	// Near-zero declination puts the noonday sun almost overhead
	if noon < 900 || noon > 1200 {
		t.Errorf("equator equinox noon GHI = %.1f, expected ~950-1100 W/m²", noon)
	}
}

func TestClearSkyIrradianceBoston(t *testing.T) {
	// The reference scenario: Boston on Feb 21.
	hours, ghi := ClearSkyIrradiance(42.36, 52)

	for i, v := range ghi {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite GHI %.1f at hour %d", v, hours[i])
		}
		if v < 0 {
			t.Errorf("negative GHI %.1f at hour %d", v, hours[i])
		}
	}

	// Winter mid-latitude clear-sky profile peaks at solar noon
	peak := ghi[6]
	for i, v := range ghi {
		if v > peak {
			t.Errorf("GHI at hour %d (%.1f) exceeds noon value %.1f", hours[i], v, peak)
		}
	}
	if peak < 400 || peak > 700 {
		t.Errorf("noon GHI = %.1f, expected 400-700 W/m² for Boston in February", peak)
	}

	// Hour angle symmetry about solar noon
	for i := 0; i < 6; i++ {
		if diff := math.Abs(ghi[i] - ghi[12-i]); diff > 1e-9 {
			t.Errorf("asymmetric GHI: hour %d = %.6f vs hour %d = %.6f",
				hours[i], ghi[i], hours[12-i], ghi[12-i])
		}
	}

	// Monotone rise until noon, fall after
	for i := 1; i <= 6; i++ {
		if ghi[i] < ghi[i-1] {
			t.Errorf("GHI not non-decreasing before noon: hour %d (%.1f) < hour %d (%.1f)",
				hours[i], ghi[i], hours[i-1], ghi[i-1])
		}
	}

	// Sun is below the horizon at 6:00 on a Boston February morning, so the
	// sample must be exactly the diffuse floor.
	dhi := ExtraterrestrialIrradiance(52) * 0.1
	if math.Abs(ghi[0]-dhi) > 1e-9 {
		t.Errorf("6:00 GHI = %.4f, expected diffuse-only floor %.4f", ghi[0], dhi)
	}
}

func TestClearSkyIrradiancePolarNight(t *testing.T) {
	// Above the Arctic circle in late December every sample is diffuse-only.
	_, ghi := ClearSkyIrradiance(75, 355)
	dhi := ExtraterrestrialIrradiance(355) * 0.1
	for i, v := range ghi {
		if math.Abs(v-dhi) > 1e-9 {
			t.Errorf("sample %d = %.4f, expected diffuse floor %.4f during polar night", i, v, dhi)
		}
	}
}

func TestProfile(t *testing.T) {
	p := NewProfile(42.36, 52)

	hour, peak := p.Peak()
	if hour != 12 {
		t.Errorf("peak hour = %d, expected 12", hour)
	}
	if peak != p.GHI[6] {
		t.Errorf("peak value %.2f does not match noon sample %.2f", peak, p.GHI[6])
	}

	kwh := p.DailyEnergy()
	if kwh < 3.0 || kwh > 5.5 {
		t.Errorf("daily energy = %.2f kWh/m², expected 3.0-5.5 for Boston in February", kwh)
	}
}
