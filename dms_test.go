package geodesy_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzneal/geodesy"
)

func TestToDMS(t *testing.T) {
	testCases := []struct {
		degrees float64
		want    string
	}{
		{-0.127005, `-000°07'37.218"`},
		{51.518602, `+051°31'06.967"`},
		{-6.259437, `-006°15'33.973"`},
		{370.5, `+010°30'00.000"`},
		{123.456789, `+123°27'24.440"`},
		{0, `+000°00'00.000"`},
	}
	for _, tc := range testCases {
		if got := geodesy.ToDMS(tc.degrees).String(); got != tc.want {
			t.Fatalf("ToDMS(%v): expected %s, got %s", tc.degrees, tc.want, got)
		}
	}
}

func TestToDMSCarry(t *testing.T) {
	assert.Equal(t, geodesy.DMS{Sign: 1, Degree: 30}, geodesy.ToDMS(30-1e-14))
	assert.Equal(t, geodesy.DMS{Sign: -1, Degree: 30}, geodesy.ToDMS(-(30 - 1e-14)))

	// values that would print as 60 carry as well
	assert.Equal(t, `+011°00'00.000"`, geodesy.ToDMS(10.99999999).String())
	assert.Equal(t, `-161°06'00.000"`, geodesy.ToDMS(-(161 + 5.0/60 + 59.99996/3600)).String())
	assert.Equal(t, `+011°00.000000'`, geodesy.ToDMM(10.9999999999).String())
	assert.Equal(t, `+010°59'59.999"`, geodesy.ToDMS(10+59.0/60+59.999/3600).String())

	d := geodesy.ToDMS(12.5)
	assert.Equal(t, 1, d.Sign)
	assert.Equal(t, 12, d.Degree)
	assert.Equal(t, 30, d.Minute)
	assert.InDelta(t, 0, d.Second, 1e-9)
}

func TestDMSDegrees(t *testing.T) {
	for v := -359.9; v < 360; v += 7.3 {
		assert.InDelta(t, v, geodesy.ToDMS(v).Degrees(), 1e-9)
		assert.InDelta(t, v, geodesy.ToDMM(v).Degrees(), 1e-9)
	}
}

func TestToDMM(t *testing.T) {
	testCases := []struct {
		degrees float64
		want    string
	}{
		{-0.127005, `-000°07.620300'`},
		{51.518602, `+051°31.116120'`},
		{-6.259437, `-006°15.566220'`},
		{370.5, `+010°30.000000'`},
	}
	for _, tc := range testCases {
		if got := geodesy.ToDMM(tc.degrees).String(); got != tc.want {
			t.Fatalf("ToDMM(%v): expected %s, got %s", tc.degrees, tc.want, got)
		}
	}
	assert.Equal(t, geodesy.DMM{Sign: 1, Degree: 8}, geodesy.ToDMM(8-1e-14))
}

func TestParseDMS(t *testing.T) {
	testCases := []struct {
		in   string
		want float64
	}{
		{`-000°07'37.218"`, -0.127005},
		{`+051°31'06.967"`, 51.518602},
		{"51 31 5.134 N", 51 + 31.0/60 + 5.134/3600},
		{"2°21.132'E", 2.3522},
		{`0°7'37.218"W`, -0.127005},
		{"33 52 S", -(33 + 52.0/60)},
		{"  10°  ", 10},
		{"+45.25", 45.25},
		{"-6.259437", -6.259437},
	}
	for _, tc := range testCases {
		got, err := geodesy.ParseDMS(tc.in)
		require.NoError(t, err, tc.in)
		assert.InDelta(t, tc.want, got, 1e-6, tc.in)
	}
}

func TestParseDMSNearCarry(t *testing.T) {
	for _, v := range []float64{10.99999999, -161.09999999, 0.00833333333, 59.9999999999} {
		s := geodesy.ToDMS(v).String()
		got, err := geodesy.ParseDMS(s)
		require.NoError(t, err, s)
		assert.InDelta(t, v, got, 0.00051/3600, s)
	}
}

func TestParseDMSRoundTrip(t *testing.T) {
	// seconds are printed with three decimals
	const tolerance = 0.00051 / 3600
	for v := -179.95; v < 180; v += 3.77 {
		got, err := geodesy.ParseDMS(geodesy.ToDMS(v).String())
		require.NoError(t, err)
		if math.Abs(got-v) > tolerance {
			t.Fatalf("expected %v, got %v", v, got)
		}
	}
}

func TestParseDMSRejectsInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"N",
		"abc",
		"12.5 30",
		"10 60",
		"10 20 60",
		"1 2 3 4",
		"1..2",
		"-10 W",
		"+10 N",
		"-33 52 S",
	} {
		_, err := geodesy.ParseDMS(in)
		assert.ErrorIs(t, err, geodesy.ErrInvalidParameter, "input %q", in)
	}
}
