package ansi

import (
	"strings"

	"github.com/pterm/pterm"
)

type colorFunc func(a ...any) string

var colorsByName = map[string]colorFunc{
	"black":        pterm.Black,
	"red":          pterm.Red,
	"green":        pterm.Green,
	"yellow":       pterm.Yellow,
	"blue":         pterm.Blue,
	"magenta":      pterm.Magenta,
	"cyan":         pterm.Cyan,
	"white":        pterm.White,
	"gray":         pterm.Gray,
	"lightred":     pterm.LightRed,
	"lightgreen":   pterm.LightGreen,
	"lightyellow":  pterm.LightYellow,
	"lightblue":    pterm.LightBlue,
	"lightmagenta": pterm.LightMagenta,
	"lightcyan":    pterm.LightCyan,
	"lightwhite":   pterm.LightWhite,
}

// lookupColor resolves a colour name such as "light-cyan" or "LightCyan".
// "none" and "default" disable colouring.
func lookupColor(name string) (colorFunc, bool) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(name))
	switch key {
	case "none", "default", "plain":
		return nil, true
	}
	fn, ok := colorsByName[key]
	return fn, ok
}

// ColorNames lists the supported colour names.
func ColorNames() []string {
	names := make([]string, 0, len(colorsByName))
	for name := range colorsByName {
		names = append(names, name)
	}
	return names
}
