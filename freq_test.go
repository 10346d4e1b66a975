package wapi

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFloatToFreq(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		f    Freq
	}{
		{
			name: "zero",
			f:    Freq{},
		},
		{
			name: "channel",
			v:    6,
			f:    Freq{M: 6},
		},
		{
			name: "threshold",
			v:    1e8,
			f:    Freq{M: 100000000},
		},
		{
			name: "below scaling",
			v:    5e8,
			f:    Freq{M: 500000000},
		},
		{
			name: "2.4GHz",
			v:    2.412e9,
			f:    Freq{M: 241200000, E: 1},
		},
		{
			name: "5GHz",
			v:    5.18e9,
			f:    Freq{M: 518000000, E: 1},
		},
		{
			name: "truncated",
			v:    2.4123456789e9,
			f:    Freq{M: 241234500, E: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.f, FloatToFreq(tt.v)); diff != "" {
				t.Fatalf("unexpected Freq (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFreqRoundTripSmallExact(t *testing.T) {
	for _, v := range []float64{1, 2, 11, 14, 165, 1000, 2412, 999999, 12345678, 1e8} {
		if want, got := v, FloatToFreq(v).Float(); want != got {
			t.Fatalf("unexpected round trip:\n- want: %v\n-  got: %v", want, got)
		}
	}
}

func TestFreqRoundTripLargeApproximate(t *testing.T) {
	for _, v := range []float64{1e8 + 1, 9.99999999e8, 1e9, 2.412e9, 2.4123456789e9, 5.825e9, 6.1e10, 1.23456789e15} {
		e := math.Floor(math.Log10(v))
		bound := math.Pow10(int(e) - 6)

		got := FloatToFreq(v).Float()
		if got > v || v-got >= bound {
			t.Fatalf("round trip of %v out of bounds: got %v, bound %v", v, got, bound)
		}
	}
}

func TestPowerConversion(t *testing.T) {
	tests := []struct {
		dbm, mw int
	}{
		{dbm: 0, mw: 1},
		{dbm: 10, mw: 10},
		{dbm: 17, mw: 50},
		{dbm: 20, mw: 100},
		{dbm: 27, mw: 501},
		{dbm: 30, mw: 1000},
	}

	for _, tt := range tests {
		mw := DBmToMilliwatt(tt.dbm)
		if want, got := tt.mw, mw; want != got {
			t.Fatalf("unexpected milliwatts for %d dBm:\n- want: %v\n-  got: %v",
				tt.dbm, want, got)
		}

		dbm := MilliwattToDBm(mw)
		if d := dbm - tt.dbm; d < -1 || d > 1 {
			t.Fatalf("dBm round trip of %d out of bounds: %d", tt.dbm, dbm)
		}
	}
}
