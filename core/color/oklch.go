// Package color converts brand colors into OKLCH theme tokens.
package color

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidColorFormat is returned for hex strings that are not 3, 4, 6 or 8 hex digits.
var ErrInvalidColorFormat = errors.New("invalid color format")

const (
	chromaEpsilon = 1e-4
	snapEpsilon   = 1e-10
)

// ThemeToken is a color in OKLCH cylindrical form.
type ThemeToken struct {
	// L is perceptual lightness in [0, 1].
	L float64

	// C is chroma, never negative.
	C float64

	// H is hue in degrees, [0, 360). Achromatic colors have H == 0.
	H float64
}

// String formats the token as a CSS oklch() value.
func (t ThemeToken) String() string {
	return "oklch(" +
		strconv.FormatFloat(t.L, 'f', 4, 64) + " " +
		strconv.FormatFloat(t.C, 'f', 4, 64) + " " +
		strconv.FormatFloat(t.H, 'f', 2, 64) + "deg)"
}

// HexToThemeToken converts an sRGB hex color (#rgb, #rgba, #rrggbb or #rrggbbaa)
// to an OKLCH token. Alpha is accepted and discarded.
func HexToThemeToken(hex string) (ThemeToken, error) {
	r, g, b, err := parseHex(hex)
	if err != nil {
		return ThemeToken{}, err
	}

	lr, lg, lb := toLinear(r), toLinear(g), toLinear(b)

	x := 0.4122214708*lr + 0.5363325363*lg + 0.0514459929*lb
	y := 0.2119034982*lr + 0.6806995451*lg + 0.1073969566*lb
	z := 0.0883024619*lr + 0.2817188376*lg + 0.6299787005*lb

	// math.Cbrt is the signed real cube root.
	lc, mc, sc := math.Cbrt(x), math.Cbrt(y), math.Cbrt(z)

	L := 0.2104542553*lc + 0.7936177850*mc - 0.0040720468*sc
	a := 1.9779984951*lc - 2.4285922050*mc + 0.4505937099*sc
	bb := 0.0259040371*lc + 0.7827717662*mc - 0.8086757660*sc

	C := math.Sqrt(a*a + bb*bb)

	H := 0.0
	if C > chromaEpsilon {
		H = math.Atan2(bb, a) * 180 / math.Pi
		if H < 0 {
			H += 360
		} else if H == 0 {
			H = 0 // drop the sign of atan2(-0, a)
		}
	}

	if math.Abs(L) < snapEpsilon {
		L = 0
	}
	if math.Abs(C) < snapEpsilon {
		C = 0
	}

	return ThemeToken{L: L, C: C, H: H}, nil
}

// parseHex returns the normalized [0,1] RGB channels of a hex color.
func parseHex(hex string) (r, g, b float64, err error) {
	digits := strings.TrimPrefix(hex, "#")

	if len(digits) == 3 || len(digits) == 4 {
		var sb strings.Builder
		for i := 0; i < len(digits); i++ {
			sb.WriteByte(digits[i])
			sb.WriteByte(digits[i])
		}
		digits = sb.String()
	}

	if len(digits) != 6 && len(digits) != 8 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidColorFormat, hex)
	}

	channels := [3]float64{}
	for i := range channels {
		v, perr := strconv.ParseUint(digits[i*2:i*2+2], 16, 8)
		if perr != nil {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidColorFormat, hex)
		}
		channels[i] = float64(v) / 255
	}

	// Alpha digits still have to be hex.
	if len(digits) == 8 {
		if _, perr := strconv.ParseUint(digits[6:8], 16, 8); perr != nil {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidColorFormat, hex)
		}
	}

	return channels[0], channels[1], channels[2], nil
}

// toLinear decodes an sRGB gamma-encoded channel.
func toLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}
