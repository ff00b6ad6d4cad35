package hotkeys

import (
	"strings"

	"github.com/keytune/keytune/internal/domain"
)

// sxhkd spells the cmd modifier "super".
var sxhkdModNames = map[Modifier]string{
	ModCtrl:  "ctrl",
	ModAlt:   "alt",
	ModShift: "shift",
	ModCmd:   "super",
}

// Sxhkd renders the bindings as an sxhkdrc snippet whose command side
// invokes the trigger client. Actions appear in display order.
func Sxhkd(b Bindings) string {
	var sb strings.Builder
	for _, action := range domain.Actions() {
		chord, ok := b[action]
		if !ok {
			continue
		}
		sb.WriteString("# ")
		sb.WriteString(Describe(action))
		sb.WriteString("\n")
		sb.WriteString(sxhkdChord(chord))
		sb.WriteString("\n\tkeytune trigger ")
		sb.WriteString(string(action))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func sxhkdChord(c Chord) string {
	parts := make([]string, 0, len(c.Modifiers)+1)
	for _, m := range c.Modifiers {
		parts = append(parts, sxhkdModNames[m])
	}
	parts = append(parts, c.Key)
	return strings.Join(parts, " + ")
}
