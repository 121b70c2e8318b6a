// printer.go
package babalang

import (
	"fmt"
	"strings"
)

// FormatValue renders a value for the REPL and diagnostics. The output is
// a readable description, not a re-parseable program.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTEmpty:
		return "empty"
	case VTObject:
		od := v.Data.(*ObjectData)
		if od.Fields != nil {
			var b strings.Builder
			b.WriteString("instance {")
			for i, n := range od.Fields.Names {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(n)
				if fv, ok := od.Fields.Entries[n]; ok {
					fmt.Fprintf(&b, ": %s", FormatValue(fv))
				}
			}
			b.WriteString("}")
			return b.String()
		}
		return fmt.Sprintf("you %d facing %s", od.Mag, od.Dir)
	case VTText:
		return fmt.Sprintf("text %q", v.Data.(string))
	case VTGroup:
		gd := v.Data.(*GroupData)
		parts := make([]string, len(gd.Elems))
		for i, e := range gd.Elems {
			parts[i] = FormatValue(e)
		}
		return "group [" + strings.Join(parts, ", ") + "]"
	case VTLevel:
		lv := v.Data.(*LevelData)
		return fmt.Sprintf("level %s (%d params)", lv.Name, len(lv.Params))
	case VTTele:
		return fmt.Sprintf("tele %s", v.Data.(*TeleData).Name)
	case VTImage:
		im := v.Data.(*ImageData)
		return fmt.Sprintf("image %s {%s}", im.Name, strings.Join(im.Fields, ", "))
	case VTRef:
		return fmt.Sprintf("mimic %s", v.Data.(*RefData).Name)
	case VTFieldList:
		return "fields [" + strings.Join(v.Data.([]string), ", ") + "]"
	default:
		return "?"
	}
}

// FormatTokens re-prints a token stream as normalized source: one space
// between words, one newline per EOL. Re-lexing the result yields the same
// token sequence (comments are gone and whitespace is canonical).
func FormatTokens(toks []Token) string {
	var b strings.Builder
	atLineStart := true
	for _, t := range toks {
		switch t.Type {
		case EOF:
			// nothing
		case EOL:
			b.WriteByte('\n')
			atLineStart = true
		default:
			if !atLineStart {
				b.WriteByte(' ')
			}
			b.WriteString(t.Lexeme)
			atLineStart = false
		}
	}
	return b.String()
}
