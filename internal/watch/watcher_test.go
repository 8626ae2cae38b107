package watch

import (
	"testing"

	"github.com/fsnotify/fsnotify"

	"distance-calculator/internal/domain"
)

func TestShouldProcess(t *testing.T) {
	cases := []struct {
		name string
		evt  fsnotify.Event
		want bool
	}{
		{"create csv", fsnotify.Event{Name: "drop/in.csv", Op: fsnotify.Create}, true},
		{"create csv uppercase ext", fsnotify.Event{Name: "drop/IN.CSV", Op: fsnotify.Create}, true},
		{"create non-csv", fsnotify.Event{Name: "drop/in.txt", Op: fsnotify.Create}, false},
		// Rename reports the old path of a moved file; the new path arrives
		// as a separate Create event.
		{"rename csv", fsnotify.Event{Name: "drop/gone.csv", Op: fsnotify.Rename}, false},
		{"write csv", fsnotify.Event{Name: "drop/in.csv", Op: fsnotify.Write}, false},
		{"remove csv", fsnotify.Event{Name: "drop/in.csv", Op: fsnotify.Remove}, false},
	}

	for _, tc := range cases {
		if got := shouldProcess(tc.evt); got != tc.want {
			t.Errorf("%s: shouldProcess = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestOutputName(t *testing.T) {
	if got := outputName("drop/cities.csv", domain.ModeRoad, "xlsx"); got != "cities_road.xlsx" {
		t.Fatalf("outputName = %q", got)
	}
	if got := outputName("cities.CSV", domain.ModeAir, "csv"); got != "cities_air.csv" {
		t.Fatalf("outputName = %q", got)
	}
}
