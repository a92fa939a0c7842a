package render

import (
	"fmt"
	"strconv"
)

// ansiBlock returns a truecolor escape that paints s with the given hex
// background, or s unchanged when color is off or the hex is unusable.
func ansiBlock(hex, s string, colorize bool) string {
	if !colorize {
		return s
	}
	r, g, b, ok := parseHex(hex)
	if !ok {
		return s
	}
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm%s\x1b[0m", r, g, b, s)
}

// ansiSwatch renders a small foreground-colored marker for legends.
func ansiSwatch(hex string, colorize bool) string {
	if !colorize {
		return "■"
	}
	r, g, b, ok := parseHex(hex)
	if !ok {
		return "■"
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm■\x1b[0m", r, g, b)
}

func parseHex(hex string) (r, g, b int64, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	var err error
	if r, err = strconv.ParseInt(hex[1:3], 16, 32); err != nil {
		return 0, 0, 0, false
	}
	if g, err = strconv.ParseInt(hex[3:5], 16, 32); err != nil {
		return 0, 0, 0, false
	}
	if b, err = strconv.ParseInt(hex[5:7], 16, 32); err != nil {
		return 0, 0, 0, false
	}
	return r, g, b, true
}
