package theory

import (
	"fmt"
	"math"
)

// Tuning reference: A4 at 440 Hz, MIDI note 69.
const (
	A4Hz   = 440.0
	A4MIDI = 69
)

// pitchClasses maps pitch-class names to semitone indices from C.
// Sharps and flats are both accepted.
var pitchClasses = map[string]int{
	"C": 0, "C#": 1, "Db": 1, "D": 2, "D#": 3, "Eb": 3,
	"E": 4, "F": 5, "F#": 6, "Gb": 6, "G": 7, "G#": 8,
	"Ab": 8, "A": 9, "A#": 10, "Bb": 10, "B": 11,
}

// PitchToFreq converts a pitch designation to a frequency in Hz.
//
// pitchClass names the note ("C", "F#", "Bb"); octave uses scientific pitch
// notation (A4 == 440 Hz); centsOffset detunes by fractional semitones.
func PitchToFreq(pitchClass string, octave int, centsOffset float64) (float64, error) {
	pc, ok := pitchClasses[pitchClass]
	if !ok {
		return 0, fmt.Errorf("theory: unknown pitch class %q", pitchClass)
	}
	midi := float64(pc + 12*(octave+1))
	freq := A4Hz * math.Pow(2, (midi-A4MIDI)/12)
	return freq * math.Pow(2, centsOffset/1200), nil
}

// ParsePitch splits a designation like "C#4" or "Bb-1" into pitch class and
// octave.
func ParsePitch(s string) (pitchClass string, octave int, err error) {
	i := len(s)
	for i > 0 && (s[i-1] >= '0' && s[i-1] <= '9') {
		i--
	}
	if i > 0 && s[i-1] == '-' {
		i--
	}
	if i == 0 || i == len(s) {
		return "", 0, fmt.Errorf("theory: malformed pitch %q", s)
	}
	pitchClass = s[:i]
	if _, ok := pitchClasses[pitchClass]; !ok {
		return "", 0, fmt.Errorf("theory: unknown pitch class %q", pitchClass)
	}
	sign := 1
	num := s[i:]
	if num[0] == '-' {
		sign = -1
		num = num[1:]
	}
	for _, c := range num {
		octave = octave*10 + int(c-'0')
	}
	return pitchClass, sign * octave, nil
}

// NamedPitchToFreq converts a full designation like "A4" or "C#3" to Hz.
func NamedPitchToFreq(s string) (float64, error) {
	pc, octave, err := ParsePitch(s)
	if err != nil {
		return 0, err
	}
	return PitchToFreq(pc, octave, 0)
}

// FreqToMidicents converts a frequency in Hz to midicents, where one cent is
// one hundredth of a semitone and A4 sits at 6900.
func FreqToMidicents(freq float64) float64 {
	return 100 * (12*math.Log2(freq/A4Hz) + A4MIDI)
}

// MidicentsToFreq is the inverse of FreqToMidicents.
func MidicentsToFreq(midicents float64) float64 {
	return A4Hz * math.Pow(2, (midicents-A4MIDI*100)/1200)
}

// RatioToCents converts an interval ratio (e.g. "3/2") to cents.
func RatioToCents(ratio string) (float64, error) {
	v, err := ParseRatio(ratio)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("theory: interval ratio must be positive, got %q", ratio)
	}
	return 1200 * math.Log2(v), nil
}

// FoldInterval folds an interval ratio into the span [1, equave**nEquaves].
// Folding is only defined for positive finite inputs and a span above 1;
// anything else returns NaN.
func FoldInterval(interval, equave float64, nEquaves int) float64 {
	span := math.Pow(equave, float64(nEquaves))
	if !foldable(interval) || !foldable(span) || span <= 1 {
		return math.NaN()
	}
	for interval < 1 {
		interval *= span
	}
	for interval > span {
		interval /= span
	}
	return interval
}

// FoldFreq folds a frequency into [lower, upper] by equave displacement.
// The conventional bounds are the piano range, A0 to C8. Non-positive or
// non-finite inputs, an equave at or below 1, or inverted bounds return NaN.
func FoldFreq(freq, lower, upper, equave float64) float64 {
	if !foldable(freq) || !foldable(lower) || !foldable(upper) ||
		!foldable(equave) || equave <= 1 || lower > upper {
		return math.NaN()
	}
	for freq < lower {
		freq *= equave
	}
	for freq > upper {
		freq /= equave
	}
	return freq
}

func foldable(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// NTET returns the frequency ratio of the nth division of an equave divided
// into the given number of equal parts. NTET(12, 2, 7) is the equal-tempered
// fifth.
func NTET(divisions int, equave float64, nth int) float64 {
	return math.Pow(equave, float64(nth)/float64(divisions))
}

// DBToAmp converts decibels to linear amplitude. DBToAmp(0) == 1.
func DBToAmp(db float64) float64 {
	return math.Pow(10, db/20)
}

// AmpToDB converts linear amplitude to decibels.
func AmpToDB(amp float64) float64 {
	return 20 * math.Log10(amp)
}
