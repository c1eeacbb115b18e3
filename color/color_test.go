package color

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		r, g, b uint8
		want    Color
	}{
		{0xFF, 0xC0, 0xC0, Color{Chromatic, Red, Light}},
		{0xFF, 0x00, 0x00, Color{Chromatic, Red, Normal}},
		{0xC0, 0x00, 0x00, Color{Chromatic, Red, Dark}},
		{0x00, 0xFF, 0xFF, Color{Chromatic, Cyan, Normal}},
		{0xFF, 0xFF, 0xFF, WhiteColor},
		{0x00, 0x00, 0x00, BlackColor},
		{0x12, 0x34, 0x56, NonStandardColor},
	}

	for i, tc := range cases {
		if got := Classify(tc.r, tc.g, tc.b); got != tc.want {
			t.Errorf("%d: Classify(0x%02x,0x%02x,0x%02x) = %v, want %v", i, tc.r, tc.g, tc.b, got, tc.want)
		}
	}
}

func TestHueAndLightnessDelta(t *testing.T) {
	red := Color{Chromatic, Red, Normal}
	darkRed := Color{Chromatic, Red, Dark}
	magenta := Color{Chromatic, Magenta, Normal}

	cases := []struct {
		name       string
		from, to   Color
		wantHue    uint8
		wantLight  uint8
	}{
		{"red->darkred", red, darkRed, 0, 1},
		{"red->magenta wraps hue", red, magenta, 5, 0},
		{"darkred->red wraps lightness", darkRed, red, 0, 2},
	}

	for _, tc := range cases {
		if got := HueDelta(tc.from, tc.to); got != tc.wantHue {
			t.Errorf("%s: HueDelta = %d, want %d", tc.name, got, tc.wantHue)
		}
		if got := LightnessDelta(tc.from, tc.to); got != tc.wantLight {
			t.Errorf("%s: LightnessDelta = %d, want %d", tc.name, got, tc.wantLight)
		}
	}
}

func TestColorString(t *testing.T) {
	cases := []struct {
		c    Color
		want string
	}{
		{Color{Chromatic, Red, Light}, "light red"},
		{Color{Chromatic, Blue, Dark}, "dark blue"},
		{WhiteColor, "white"},
		{BlackColor, "black"},
		{NonStandardColor, "non-standard"},
	}

	for i, tc := range cases {
		if got := tc.c.String(); got != tc.want {
			t.Errorf("%d: String() = %q, want %q", i, got, tc.want)
		}
	}
}
