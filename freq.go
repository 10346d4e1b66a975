package wapi

import "math"

// freqScaleThreshold is the largest decimal exponent encoded without scaling
// the mantissa.
const freqScaleThreshold = 8

// A Freq is the wire representation of a frequency or channel number,
// M * 10^E, as carried by struct iw_freq.
type Freq struct {
	M     int32
	E     int16
	I     uint8
	Flags uint8
}

// Float returns the decoded value of f.
func (f Freq) Float() float64 {
	return float64(f.M) * math.Pow10(int(f.E))
}

// FloatToFreq encodes v as a Freq. Values below 10^9 are stored with a zero
// exponent and a truncated mantissa. Larger values keep seven significant
// digits so the mantissa fits in 32 bits, which makes the round trip
// approximate.
func FloatToFreq(v float64) Freq {
	if v < 1 {
		return Freq{M: int32(v)}
	}

	e := int(math.Floor(math.Log10(v)))
	if e > freqScaleThreshold {
		m := math.Floor(v/math.Pow10(e-6)) * 100
		return Freq{
			M: int32(m),
			E: int16(e - freqScaleThreshold),
		}
	}

	return Freq{M: int32(v)}
}

// DBmToMilliwatt converts a power level in dBm to milliwatts, rounding down.
func DBmToMilliwatt(dbm int) int {
	return int(math.Floor(math.Pow(10, float64(dbm)/10)))
}

// MilliwattToDBm converts a positive power level in milliwatts to dBm,
// rounding up. It is not an exact inverse of DBmToMilliwatt.
func MilliwattToDBm(mw int) int {
	return int(math.Ceil(10 * math.Log10(float64(mw))))
}
