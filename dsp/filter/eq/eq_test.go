package eq

import (
	"math"
	"testing"

	"github.com/gbraad-music/samplecrate-sub003/internal/testutil"
)

func TestFlatByDefault(t *testing.T) {
	e := NewThreeBand()

	in := testutil.DeterministicNoise(3, 1, 256)
	out := append([]float64(nil), in...)
	e.ProcessBlock(out)

	testutil.RequireSliceNearlyEqual(t, out, in, 0)
}

func TestZeroGainIsTransparent(t *testing.T) {
	e := NewThreeBand()
	e.SetGains(0, 0, 0, 48000)

	for _, f := range []float64{30, 100, 1000, 10000, 20000} {
		if db := e.MagnitudeDB(f); math.Abs(db) > 1e-9 {
			t.Fatalf("%v Hz: %v dB, want 0", f, db)
		}
	}
}

func TestBandsAreIndependent(t *testing.T) {
	const sr = 48000.0

	tests := []struct {
		name         string
		low, mid, hi float64
		probeHz      float64
		wantDB       float64
	}{
		{name: "low boost", low: 12, probeHz: 20, wantDB: 12},
		{name: "mid cut", mid: -12, probeHz: MidFreqHz, wantDB: -12},
		{name: "high boost", hi: 12, probeHz: 23000, wantDB: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewThreeBand()
			e.SetGains(tt.low, tt.mid, tt.hi, sr)

			if db := e.MagnitudeDB(tt.probeHz); math.Abs(db-tt.wantDB) > 0.75 {
				t.Fatalf("%v Hz: %.2f dB, want %.2f", tt.probeHz, db, tt.wantDB)
			}
		})
	}
}

func TestGainsAreClamped(t *testing.T) {
	e := NewThreeBand()
	e.SetGains(40, -40, math.NaN(), 44100)

	if e.GainDB(Low) != MaxGainDB || e.GainDB(Mid) != -MaxGainDB || e.GainDB(High) != 0 {
		t.Fatalf("gains = %v %v %v", e.GainDB(Low), e.GainDB(Mid), e.GainDB(High))
	}
}

func TestStableAtEveryRate(t *testing.T) {
	for _, sr := range []float64{8000, 16000, 22050, 44100, 48000, 96000, 192000} {
		e := NewThreeBand()
		e.SetGains(MaxGainDB, -MaxGainDB, MaxGainDB, sr)

		for b := Low; b < numBands; b++ {
			if !e.Coefficients(b).IsStable() {
				t.Fatalf("sr=%v band %d unstable: %+v", sr, b, e.Coefficients(b))
			}
		}
	}
}

func TestResetClearsState(t *testing.T) {
	e := NewThreeBand()
	e.SetGains(6, 6, 6, 48000)

	e.ProcessSample(1)
	e.Reset()

	for b := range e.sections {
		if e.sections[b].State() != [2]float64{} {
			t.Fatalf("band %d state not cleared", b)
		}
	}
}
