package archive

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/solartools/clearsky/pkg/solar"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndGet(t *testing.T) {
	store := openTestStore(t)

	p := solar.NewProfile(42.36, 52)
	id, err := store.Save(p, "Boston, Feb 21")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if id == "" {
		t.Fatal("Save returned empty id")
	}

	rec, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec.Title != "Boston, Feb 21" {
		t.Errorf("title = %q, expected %q", rec.Title, "Boston, Feb 21")
	}
	if rec.Profile.Latitude != p.Latitude || rec.Profile.DayOfYear != p.DayOfYear {
		t.Errorf("location = (%.2f, %d), expected (%.2f, %d)",
			rec.Profile.Latitude, rec.Profile.DayOfYear, p.Latitude, p.DayOfYear)
	}
	if len(rec.Profile.GHI) != len(p.GHI) {
		t.Fatalf("series length = %d, expected %d", len(rec.Profile.GHI), len(p.GHI))
	}
	for i := range p.GHI {
		if rec.Profile.Hours[i] != p.Hours[i] {
			t.Errorf("hours[%d] = %d, expected %d", i, rec.Profile.Hours[i], p.Hours[i])
		}
		if math.Abs(rec.Profile.GHI[i]-p.GHI[i]) > 1e-9 {
			t.Errorf("ghi[%d] = %f, expected %f", i, rec.Profile.GHI[i], p.GHI[i])
		}
	}
}

func TestGetUnknownID(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get("no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get unknown id returned %v, expected ErrNotFound", err)
	}
}

func TestList(t *testing.T) {
	store := openTestStore(t)

	for _, doy := range []int{52, 172, 355} {
		if _, err := store.Save(solar.NewProfile(42.36, doy), "run"); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	records, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("List returned %d records, expected 3", len(records))
	}
}
