// ABOUTME: Renders a style table to CSS text for the browser to consume.
// ABOUTME: Output is deterministic: tokens, base rules, keyframes, then media blocks widest first.
package theme

import (
	"fmt"
	"sort"
	"strings"
)

// CSS renders the table as a stylesheet. The same table always renders to
// the same bytes, so the output can be cached and ETagged by the server.
func (t *Table) CSS() string {
	var b strings.Builder

	if len(t.Tokens) > 0 {
		b.WriteString(":root {\n")
		for _, tok := range t.Tokens {
			fmt.Fprintf(&b, "    --%s: %s;\n", tok.Name, tok.Value)
		}
		b.WriteString("}\n")
	}

	for _, r := range t.Rules {
		writeRule(&b, r, "")
	}

	for _, kf := range t.Keyframes {
		fmt.Fprintf(&b, "\n@keyframes %s {\n", kf.Name)
		for _, frame := range kf.Frames {
			fmt.Fprintf(&b, "    %d%% {\n", frame.At)
			for _, d := range frame.Decls {
				fmt.Fprintf(&b, "        %s: %s;\n", d.Property, d.Value)
			}
			b.WriteString("    }\n")
		}
		b.WriteString("}\n")
	}

	bps := make([]Breakpoint, len(t.Breakpoints))
	copy(bps, t.Breakpoints)
	sort.Slice(bps, func(i, j int) bool { return bps[i].MaxWidth > bps[j].MaxWidth })
	for _, bp := range bps {
		fmt.Fprintf(&b, "\n@media (max-width: %dpx) {\n", bp.MaxWidth)
		for _, r := range bp.Rules {
			writeRule(&b, r, "    ")
		}
		b.WriteString("}\n")
	}

	return b.String()
}

func writeRule(b *strings.Builder, r Rule, indent string) {
	fmt.Fprintf(b, "\n%s%s {\n", indent, r.Selector)
	for _, d := range r.Decls {
		fmt.Fprintf(b, "%s    %s: %s;\n", indent, d.Property, d.Value)
	}
	fmt.Fprintf(b, "%s}\n", indent)
}
