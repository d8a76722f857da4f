package config

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Keys shared by the query string and the form.
const (
	KeyLayers    = "layers"
	KeyBranches  = "branches"
	KeySize      = "size"
	KeyBaseAngle = "base-angle"
	KeySpeed     = "speed"
	KeyDirection = "direction"
)

// Keys lists every parameter key in form order.
var Keys = []string{KeyLayers, KeyBranches, KeySize, KeyBaseAngle, KeySpeed, KeyDirection}

// Form is a source of named field values. url.Values satisfies it.
type Form interface {
	Get(key string) string
}

// FromQuery reads parameters from query values. Missing or unparseable
// numbers fall back to the defaults; direction is true only for "true".
func FromQuery(q url.Values) Params {
	p := readNumbers(q)
	p.Direction = q.Get(KeyDirection) == "true"
	return p
}

// ParseQuery is FromQuery over a raw query string, with or without a leading '?'.
func ParseQuery(raw string) (Params, error) {
	q, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return DefaultParams(), err
	}
	return FromQuery(q), nil
}

// FromForm reads parameters from a submitted form. A non-empty direction
// field counts as checked, whatever its value.
func FromForm(f Form) Params {
	p := readNumbers(f)
	p.Direction = f.Get(KeyDirection) != ""
	return p
}

func readNumbers(f Form) Params {
	d := DefaultParams()
	return Params{
		Depth:     intOr(f.Get(KeyLayers), d.Depth),
		Branches:  intOr(f.Get(KeyBranches), d.Branches),
		Size:      floatOr(f.Get(KeySize), d.Size),
		BaseAngle: floatOr(f.Get(KeyBaseAngle), d.BaseAngle),
		Speed:     floatOr(f.Get(KeySpeed), d.Speed),
	}
}

// Values returns the full key set.
func (p Params) Values() url.Values {
	v := url.Values{}
	v.Set(KeyLayers, strconv.Itoa(p.Depth))
	v.Set(KeyBranches, strconv.Itoa(p.Branches))
	v.Set(KeySize, formatFloat(p.Size))
	v.Set(KeyBaseAngle, formatFloat(p.BaseAngle))
	v.Set(KeySpeed, formatFloat(p.Speed))
	v.Set(KeyDirection, strconv.FormatBool(p.Direction))
	return v
}

// Encode returns the query string, without the leading '?'.
func (p Params) Encode() string {
	return p.Values().Encode()
}

func intOr(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// "12.7" still reads as 12
	if f, err := strconv.ParseFloat(s, 64); err == nil && !isBad(f) {
		return int(f)
	}
	return def
}

func floatOr(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || isBad(f) {
		return def
	}
	return f
}

func isBad(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
