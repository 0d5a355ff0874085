package schedule

import (
	"fmt"
	"unicode/utf16"
)

// ColorOf derives a display color ("#rrggbb") for a group name.
//
// The value depends only on the string: a 32-bit rolling hash
// (h = c + h*31 over UTF-16 code units) whose low three bytes become the
// red, green and blue channels. Different groups may share a color; one
// group always maps to the same color, across calls and restarts.
func ColorOf(group string) string {
	var h int32
	for _, c := range utf16.Encode([]rune(group)) {
		h = int32(c) + ((h << 5) - h)
	}
	var rgb [3]byte
	for i := range rgb {
		rgb[i] = byte((h >> (uint(i) * 8)) & 0xFF)
	}
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}
