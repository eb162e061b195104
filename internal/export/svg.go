// Package export turns chart draw commands into standalone documents.
package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/gantry/internal/gantt"
)

const fontFamily = "Inter, Helvetica, Arial, sans-serif"

// SVG renders draw commands as an SVG document of the given size. Every
// element carries its role as a class, and interactive elements carry
// data-item and data-action attributes so a browser host can wire callbacks.
func SVG(cmds []gantt.DrawCommand, width, height float64) string {
	var svg strings.Builder
	fmt.Fprintf(&svg, `<?xml version="1.0" encoding="UTF-8"?>
<svg width="%s" height="%s" viewBox="0 0 %s %s" xmlns="http://www.w3.org/2000/svg" font-family="%s">
`, num(width), num(height), num(width), num(height), fontFamily)

	for _, c := range cmds {
		writeCommand(&svg, c)
	}

	svg.WriteString("</svg>\n")
	return svg.String()
}

func writeCommand(svg *strings.Builder, c gantt.DrawCommand) {
	switch c.Kind {
	case gantt.KindRect:
		fmt.Fprintf(svg, `<rect x="%s" y="%s" width="%s" height="%s"`,
			num(c.X), num(c.Y), num(math.Max(0, c.Width)), num(math.Max(0, c.Height)))
		if c.Radius > 0 {
			fmt.Fprintf(svg, ` rx="%s"`, num(c.Radius))
		}
		writePaint(svg, c)
		svg.WriteString("/>\n")
	case gantt.KindLine:
		fmt.Fprintf(svg, `<line x1="%s" y1="%s" x2="%s" y2="%s"`, num(c.X), num(c.Y), num(c.X2), num(c.Y2))
		writePaint(svg, c)
		svg.WriteString("/>\n")
	case gantt.KindPath:
		fmt.Fprintf(svg, `<path d="%s"`, escapeXML(c.Path))
		writePaint(svg, c)
		svg.WriteString("/>\n")
	case gantt.KindPolygon:
		pts := make([]string, len(c.Points))
		for i, p := range c.Points {
			pts[i] = num(p.X) + "," + num(p.Y)
		}
		fmt.Fprintf(svg, `<polygon points="%s"`, strings.Join(pts, " "))
		writePaint(svg, c)
		svg.WriteString("/>\n")
	case gantt.KindText:
		anchor := c.Anchor
		if anchor == "" {
			anchor = gantt.AnchorStart
		}
		fmt.Fprintf(svg, `<text x="%s" y="%s" text-anchor="%s" font-size="%s"`,
			num(c.X), num(c.Y), anchor, num(c.FontSize))
		if c.Bold {
			svg.WriteString(` font-weight="bold"`)
		}
		writePaint(svg, c)
		svg.WriteString(">" + escapeXML(c.Text) + "</text>\n")
	}
}

// writePaint emits the shared presentation and data attributes.
func writePaint(svg *strings.Builder, c gantt.DrawCommand) {
	if c.Role != "" {
		fmt.Fprintf(svg, ` class="%s"`, c.Role)
	}
	fill := c.Fill
	if fill == "" {
		fill = "none"
	}
	fmt.Fprintf(svg, ` fill="%s"`, escapeXML(fill))
	if c.Stroke != "" {
		fmt.Fprintf(svg, ` stroke="%s" stroke-width="%s"`, escapeXML(c.Stroke), num(c.StrokeWidth))
	}
	if c.Dash != "" {
		fmt.Fprintf(svg, ` stroke-dasharray="%s"`, escapeXML(c.Dash))
	}
	if c.Opacity > 0 && c.Opacity < 1 {
		fmt.Fprintf(svg, ` opacity="%s"`, num(c.Opacity))
	}
	if c.ItemID != "" {
		fmt.Fprintf(svg, ` data-item="%s"`, escapeXML(c.ItemID))
	}
	if c.Action != gantt.ActionNone {
		fmt.Fprintf(svg, ` data-action="%s"`, c.Action)
	}
}

func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// escapeXML escapes the five XML special characters.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
