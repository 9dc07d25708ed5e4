package xfs

import (
	"math"
	"testing"
)

func TestFormatFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float32
		want string
	}{
		{0, "0"},
		{3.5, "3.5"},
		{-2, "-2"},
		{0.1, "0.1"},
		{1.0 / 3, "0.33333334"},
		{123456.78, "123456.78"},
		{0.0001, "0.0001"},
		{5e-5, "5E-05"},
		{1e-7, "1E-07"},
		{1234567, "1234567"},
		{1e7, "1E+07"},
		{12345678, "12345678"},
		{-2.5e8, "-2.5E+08"},
		{1e20, "1E+20"},
		{float32(math.Inf(1)), "Infinity"},
		{float32(math.Inf(-1)), "-Infinity"},
		{float32(math.NaN()), "NaN"},
	}
	for _, tc := range tests {
		if got := FormatFloat(tc.in); got != tc.want {
			t.Errorf("FormatFloat(%v): got %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatBool(t *testing.T) {
	t.Parallel()

	if FormatBool(true) != "True" || FormatBool(false) != "False" {
		t.Fatalf("got %q/%q", FormatBool(true), FormatBool(false))
	}
}
