package tuning

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/shapesplash/sim"
)

func TestDefaultMatchesEmbeddedFile(t *testing.T) {
	d := Default()
	if d.Friction != 0.995 {
		t.Fatalf("expected default friction 0.995, got %f", d.Friction)
	}
	if d.HardCap != 200 || d.SoftCap != 150 {
		t.Fatalf("expected caps 150/200, got %d/%d", d.SoftCap, d.HardCap)
	}
	if d.Vortex.Duration != 5 || d.Vortex.Radius != 300 {
		t.Fatalf("unexpected vortex defaults: %+v", d.Vortex)
	}
	if d.MassModel != "area" {
		t.Fatalf("expected area mass model by default, got %q", d.MassModel)
	}
}

func TestLoadPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	body := "elasticity: 0.5\nvortex:\n  radius: 120\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Elasticity != 0.5 {
		t.Fatalf("override not applied, elasticity %f", got.Elasticity)
	}
	if got.Vortex.Radius != 120 {
		t.Fatalf("nested override not applied, radius %f", got.Vortex.Radius)
	}
	// Untouched keys keep their defaults.
	if got.Friction != 0.995 || got.Vortex.Duration != 5 {
		t.Fatalf("defaults lost on partial override: %+v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		got, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if err == nil {
			t.Fatalf("expected an error for a missing file")
		}
		if got.Friction != Default().Friction {
			t.Fatalf("missing file must fall back to defaults")
		}
	})

	t.Run("bad_yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("friction: [oops"), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := Load(path)
		if err == nil {
			t.Fatalf("expected a parse error")
		}
		if got != Default() {
			t.Fatalf("a parse error must return unmodified defaults")
		}
	})
}

func TestSimConfig(t *testing.T) {
	d := Default()
	cfg := d.SimConfig(800, 600)
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Fatalf("bounds not applied: %f x %f", cfg.Width, cfg.Height)
	}
	if cfg.MassModel != sim.MassArea {
		t.Fatalf("expected area mass model, got %v", cfg.MassModel)
	}
	if cfg.VortexRadius != d.Vortex.Radius || cfg.Elasticity != d.Elasticity {
		t.Fatalf("tuning fields lost in conversion: %+v", cfg)
	}

	d.MassModel = "linear"
	if d.SimConfig(800, 600).MassModel != sim.MassLinear {
		t.Fatalf("linear mass model not honored")
	}
}
