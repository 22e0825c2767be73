package diagram

import (
	"fmt"
	"strings"
)

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// WriteSVG serializes a scene to a standalone SVG document.
func WriteSVG(s Scene) string {
	var b strings.Builder
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`,
		s.Width, s.Height, s.Width, s.Height)
	b.WriteByte('\n')

	for _, e := range s.Elems {
		switch v := e.(type) {
		case Line:
			fmt.Fprintf(&b,
				`<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="%v" stroke-width="%g"/>`,
				v.X1, v.Y1, v.X2, v.Y2, v.Color, v.Width)
		case Rect:
			fmt.Fprintf(&b, `<rect x="%g" y="%g" width="%g" height="%g"`, v.X, v.Y, v.W, v.H)
			if v.RX > 0 {
				fmt.Fprintf(&b, ` rx="%g"`, v.RX)
			}
			fmt.Fprintf(&b, ` fill="%v"/>`, v.Color)
		case Circle:
			fmt.Fprintf(&b, `<circle cx="%g" cy="%g" r="%g"`, v.CX, v.CY, v.R)
			if v.Fill != "" {
				fmt.Fprintf(&b, ` fill="%v"`, v.Fill)
			} else {
				b.WriteString(` fill="none"`)
			}
			if v.Stroke != "" {
				fmt.Fprintf(&b, ` stroke="%v" stroke-width="%g"`, v.Stroke, v.StrokeWidth)
			}
			b.WriteString("/>")
		case Label:
			fmt.Fprintf(&b, `<text x="%g" y="%g" font-family="Arial, sans-serif" font-size="%g"`,
				v.X, v.Y, v.Size)
			if v.Bold {
				b.WriteString(` font-weight="bold"`)
			}
			fmt.Fprintf(&b, ` fill="%v"`, v.Color)
			if v.Anchor != "" {
				fmt.Fprintf(&b, ` text-anchor="%v"`, v.Anchor)
			}
			if v.Middle {
				b.WriteString(` dominant-baseline="middle"`)
			}
			fmt.Fprintf(&b, `>%v</text>`, textEscaper.Replace(v.Text))
		}
		b.WriteByte('\n')
	}

	b.WriteString("</svg>")
	return b.String()
}
