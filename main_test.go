package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/df07/go-ray-intersection/pkg/log"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	app.ErrWriter = &buf
	err := app.Run(append([]string{"rayx"}, args...))
	return buf.String(), err
}

func TestParseTriple(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		x, y, z   float64
		expectErr bool
	}{
		{"integers", "1,2,3", 1, 2, 3, false},
		{"spaces and decimals", " -1.5, 0 ,2e1", -1.5, 0, 20, false},
		{"too few", "1,2", 0, 0, 0, true},
		{"too many", "1,2,3,4", 0, 0, 0, true},
		{"not a number", "1,a,3", 0, 0, 0, true},
		{"empty", "", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, z, err := parseTriple(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if x != tt.x || y != tt.y || z != tt.z {
				t.Errorf("Expected (%g, %g, %g), got (%g, %g, %g)", tt.x, tt.y, tt.z, x, y, z)
			}
		})
	}
}

func TestTraceCommand(t *testing.T) {
	out, err := runApp(t, "trace", "--scene", "floor", "--origin", "50,10,-2", "--direction", "0,-1,0")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "3 intersection(s)") {
		t.Errorf("Expected 3 intersections, got:\n%s", out)
	}
	if !strings.Contains(out, "closest") || !strings.Contains(out, "Tube") || !strings.Contains(out, "Plane") {
		t.Errorf("Expected a table naming the tube and the plane, got:\n%s", out)
	}

	out, err = runApp(t, "trace", "--scene", "floor", "--origin", "50,10,-2", "--direction", "0,1,0")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "0 intersection(s)") {
		t.Errorf("Expected no intersections, got:\n%s", out)
	}

	out, err = runApp(t, "trace", "--scene", "floor", "--origin", "50,10,-2", "--direction", "0,-1,0", "--max-distance", "7")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "1 intersection(s)") {
		t.Errorf("Expected only the upper tube wall within the limit, got:\n%s", out)
	}
}

func TestTraceCommand_InvalidInput(t *testing.T) {
	if _, err := runApp(t, "trace", "--scene", "floor", "--direction", "0,0,0"); err == nil {
		t.Error("Expected error for a zero direction")
	}
	if _, err := runApp(t, "trace", "--scene", "floor", "--origin", "1,2"); err == nil {
		t.Error("Expected error for a malformed origin")
	}
	if _, err := runApp(t, "trace", "--scene", "nonexistent"); err == nil {
		t.Error("Expected error for an unknown scene")
	}
}

func TestStatsCommand(t *testing.T) {
	out, err := runApp(t, "stats", "--scene", "mixed", "--size", "500")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, want := range []string{"nodes", "leaves", "largest leaf", "mixed"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestBenchCommand(t *testing.T) {
	out, err := runApp(t, "bench", "--scene", "grid", "--size", "6", "--rays", "300", "--workers", "2")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, want := range []string{"flat, CBR", "bvh, no CBR", "bvh, CBR", " 300 |"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}

	out, err = runApp(t, "bench", "--scene", "fan", "--size", "20", "--rays", "100", "--no-bvh")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.Contains(out, "bvh") {
		t.Errorf("Expected flat runs only with --no-bvh, got:\n%s", out)
	}
}

func TestScenesCommand(t *testing.T) {
	out, err := runApp(t, "scenes")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, name := range []string{"fan", "floor", "grid", "mixed"} {
		if !strings.Contains(out, name) {
			t.Errorf("Expected scene %q in output:\n%s", name, out)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	defer log.SetLevel(log.Notice)

	out, err := runApp(t, "--version")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "0.1.0") {
		t.Errorf("Expected the version in output, got:\n%s", out)
	}

	for _, flag := range []string{"-v", "-vv"} {
		out, err := runApp(t, flag, "scenes")
		if err != nil {
			t.Fatalf("Unexpected error with %s: %v", flag, err)
		}
		if !strings.Contains(out, "mixed") {
			t.Errorf("Expected the scene list with %s, got:\n%s", flag, out)
		}
	}
}
