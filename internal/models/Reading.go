package models

import (
	"math"
	"strconv"
	"time"
)

// mg/dL per mmol/L for glucose.
const mgPerDlPerMmol = 18.0182

type Trend int

const (
	TrendUnknown Trend = iota
	TrendFallingFast
	TrendFalling
	TrendStable
	TrendRising
	TrendRisingFast
)

// UnmarshalJSON accepts the vendor trend code as either a bare number or a
// quoted string ("1".."5"); both forms have been observed on the wire.
func (t *Trend) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "null" || s == "" {
		*t = TrendStable
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < int(TrendFallingFast) || n > int(TrendRisingFast) {
		*t = TrendStable
		return nil
	}
	*t = Trend(n)
	return nil
}

func (t Trend) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(t))), nil
}

func (t Trend) String() string {
	switch t {
	case TrendFallingFast:
		return "falling-fast"
	case TrendFalling:
		return "falling"
	case TrendStable:
		return "stable"
	case TrendRising:
		return "rising"
	case TrendRisingFast:
		return "rising-fast"
	}
	return "unknown"
}

// Indicator returns the arrow shown next to a reading.
func (t Trend) Indicator() string {
	switch t {
	case TrendFallingFast:
		return "↓"
	case TrendFalling:
		return "↘"
	case TrendStable:
		return "→"
	case TrendRising:
		return "↗"
	case TrendRisingFast:
		return "↑"
	}
	return ""
}

// Reading is an immutable glucose measurement snapshot.
type Reading struct {
	Timestamp time.Time `json:"timestamp"`
	ValueMgDl float64   `json:"valueMgDl"`
	ValueMmol float64   `json:"valueMmol"`
	Trend     Trend     `json:"trend"`
	High      bool      `json:"high"`
	Low       bool      `json:"low"`
}

// MmolFromMgDl converts mg/dL to mmol/L rounded to one decimal place.
func MmolFromMgDl(mgdl float64) float64 {
	return math.Round(mgdl/mgPerDlPerMmol*10) / 10
}
