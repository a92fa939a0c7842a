package state

// The display palette. Colors are assigned by first-start order and cycle,
// so assignments stay stable across sessions as long as history is kept,
// independent of the current sort order.
var timerColors = []string{
	"#4a9eff", // blue
	"#4ade80", // green
	"#f472b6", // pink
	"#fbbf24", // amber
	"#a78bfa", // purple
	"#22d3d3", // cyan
	"#fb923c", // orange
	"#f87171", // red
}

// TimerColor returns the stable color for a timer given the first-start
// order of all timers. Unknown timers get the first palette color.
func TimerColor(name string, colorOrder []string) string {
	for i, t := range colorOrder {
		if t == name {
			return timerColors[i%len(timerColors)]
		}
	}
	return timerColors[0]
}

// PaletteColors maps every timer in first-start order to its color.
func PaletteColors(colorOrder []string) map[string]string {
	colors := make(map[string]string, len(colorOrder))
	for i, t := range colorOrder {
		colors[t] = timerColors[i%len(timerColors)]
	}
	return colors
}
