// Package theory holds the pure music-theory transforms that feed the
// scheduler: tempo and ratio arithmetic, pitch and frequency conversion,
// proportional rhythm-tree expansion, and combination product sets.
//
// Everything here is a stateless, deterministic function; no concurrency,
// no I/O. The scheduler consumes the outputs (start times, durations,
// frequencies, amplitudes) and never calls back in.
package theory

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// ParseRatio parses a musical ratio such as "1/4", "3/2", or "5" into a
// float. Whitespace is tolerated; a zero denominator is an error.
func ParseRatio(s string) (float64, error) {
	r := new(big.Rat)
	if _, ok := r.SetString(strings.TrimSpace(s)); !ok {
		return 0, fmt.Errorf("theory: malformed ratio %q", s)
	}
	f, _ := r.Float64()
	return f, nil
}

// BeatDuration converts a beat ratio at a tempo into seconds.
//
// ratio is the note value as a fraction of a whole note (e.g. "1/4" for a
// quarter note); bpm is the tempo; beatRatio is the note value that carries
// the beat, conventionally "1/4".
//
// BeatDuration("1/4", 60, "1/4") == 1.0.
func BeatDuration(ratio string, bpm float64, beatRatio string) (float64, error) {
	if bpm <= 0 {
		return 0, fmt.Errorf("theory: bpm must be positive, got %v", bpm)
	}
	value, err := ParseRatio(ratio)
	if err != nil {
		return 0, err
	}
	beat := new(big.Rat)
	if _, ok := beat.SetString(strings.TrimSpace(beatRatio)); !ok || beat.Sign() == 0 {
		return 0, fmt.Errorf("theory: malformed beat ratio %q", beatRatio)
	}
	tempoFactor := 60.0 / bpm
	inv, _ := new(big.Rat).Inv(beat).Float64()
	return tempoFactor * value * inv, nil
}

// Onsets converts a sequence of durations into cumulative onset times
// starting at zero. Durations contribute their absolute value, so rests
// (negative durations) advance time without sounding.
func Onsets(durations []float64) []float64 {
	onsets := make([]float64, len(durations)+1)
	for i, d := range durations {
		onsets[i+1] = onsets[i] + math.Abs(d)
	}
	return onsets
}

// Quantize finds the closest beat ratio for a duration at a tempo, with the
// denominator limited to maxDenominator. The inverse of BeatDuration, up to
// the quantization grid.
func Quantize(duration, bpm float64, beatRatio string, maxDenominator int) (string, error) {
	if bpm <= 0 {
		return "", fmt.Errorf("theory: bpm must be positive, got %v", bpm)
	}
	if maxDenominator < 1 {
		maxDenominator = 16
	}
	beat := new(big.Rat)
	if _, ok := beat.SetString(strings.TrimSpace(beatRatio)); !ok || beat.Sign() == 0 {
		return "", fmt.Errorf("theory: malformed beat ratio %q", beatRatio)
	}
	inv, _ := new(big.Rat).Inv(beat).Float64()
	reference := 60.0 / bpm * inv
	beatCount := duration / reference

	// Best rational approximation over the bounded denominators.
	bestNum, bestDen := 0, 1
	bestErr := math.Inf(1)
	for den := 1; den <= maxDenominator; den++ {
		num := int(math.Round(beatCount * float64(den)))
		if err := math.Abs(beatCount - float64(num)/float64(den)); err < bestErr {
			bestNum, bestDen, bestErr = num, den, err
		}
	}
	r := big.NewRat(int64(bestNum), int64(bestDen))
	return r.RatString(), nil
}

// MetricModulation returns the new tempo after re-assigning the beat from
// one note value to another while holding the beat duration constant.
func MetricModulation(currentTempo, currentBeatValue, newBeatValue float64) float64 {
	currentDuration := 60.0 / currentTempo * currentBeatValue
	return 60.0 / currentDuration * newBeatValue
}

// CyclesToFrequency returns the frequency in Hz that produces the given
// number of complete cycles within duration seconds.
func CyclesToFrequency(cycles, duration float64) float64 {
	return cycles / duration
}

// FormatDuration renders seconds as h:mm:ss:ms, omitting leading zero units.
// Examples: "45s:500ms", "02m:05s:000ms", "1h:00m:00s:000ms".
func FormatDuration(seconds float64) string {
	h := int(seconds) / 3600
	seconds -= float64(h * 3600)
	m := int(seconds) / 60
	seconds -= float64(m * 60)
	s := int(seconds)
	ms := int(math.Round((seconds - float64(s)) * 1000))
	if ms == 1000 {
		s++
		ms = 0
	}
	if s == 60 {
		m++
		s = 0
	}
	if m == 60 {
		h++
		m = 0
	}

	var parts []string
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if h > 0 || m > 0 {
		parts = append(parts, fmt.Sprintf("%02dm", m))
	}
	parts = append(parts, fmt.Sprintf("%02ds", s), fmt.Sprintf("%03dms", ms))
	return strings.Join(parts, ":")
}
