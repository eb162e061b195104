package gantt

import (
	"math"
	"strconv"
)

// Kind is the primitive shape of a draw command.
type Kind string

const (
	KindRect    Kind = "rect"
	KindLine    Kind = "line"
	KindText    Kind = "text"
	KindPath    Kind = "path"
	KindPolygon Kind = "polygon"
)

// Role is the semantic purpose of a draw command, so surfaces can style or
// skip whole classes of primitives.
type Role string

const (
	RoleBackground     Role = "background"
	RoleHeader         Role = "header"
	RoleHeaderLabel    Role = "header_label"
	RoleLabelColumn    Role = "label_column"
	RoleWeekend        Role = "weekend"
	RoleGrid           Role = "grid"
	RoleRowSeparator   Role = "row_separator"
	RoleRow            Role = "row"
	RoleHighlight      Role = "highlight"
	RoleGlyph          Role = "glyph"
	RoleLabel          Role = "label"
	RoleBar            Role = "bar"
	RoleProgress       Role = "progress"
	RoleCriticalBorder Role = "critical_border"
	RoleHandle         Role = "handle"
	RoleConnector      Role = "connector"
	RoleArrowhead      Role = "arrowhead"
	RoleToday          Role = "today"
	RoleTooltip        Role = "tooltip"
)

// Action names the host callback a region maps to.
type Action string

const (
	ActionNone         Action = ""
	ActionActivate     Action = "activate"
	ActionToggleExpand Action = "toggle_expand"
	ActionResizeStart  Action = "resize_start"
	ActionResizeEnd    Action = "resize_end"
	ActionMove         Action = "move"
)

// Anchor is the horizontal alignment of text commands.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
)

// DrawCommand is one framework-neutral drawing primitive.
//
// Rect uses X, Y, Width, Height. Line uses X, Y to X2, Y2. Text is anchored at
// X, Y (baseline); Width and Height, when set, give its hit box starting at
// X, Y-Height. Path carries SVG path data in Path. Polygon uses Points.
type DrawCommand struct {
	Kind Kind
	Role Role

	X, Y          float64
	Width, Height float64
	X2, Y2        float64
	Points        []Point
	Path          string

	Text     string
	Anchor   Anchor
	FontSize float64
	Bold     bool

	Fill        string
	Stroke      string
	StrokeWidth float64
	Dash        string
	Opacity     float64
	Radius      float64

	ItemID string
	Action Action
}

// Bounds returns the axis-aligned box of the command.
func (c DrawCommand) Bounds() (x0, y0, x1, y1 float64) {
	switch c.Kind {
	case KindLine:
		return math.Min(c.X, c.X2), math.Min(c.Y, c.Y2), math.Max(c.X, c.X2), math.Max(c.Y, c.Y2)
	case KindText:
		return c.X, c.Y - c.Height, c.X + c.Width, c.Y
	case KindPolygon:
		if len(c.Points) == 0 {
			return 0, 0, 0, 0
		}
		x0, y0, x1, y1 = c.Points[0].X, c.Points[0].Y, c.Points[0].X, c.Points[0].Y
		for _, p := range c.Points[1:] {
			x0, y0 = math.Min(x0, p.X), math.Min(y0, p.Y)
			x1, y1 = math.Max(x1, p.X), math.Max(y1, p.Y)
		}
		return x0, y0, x1, y1
	default:
		return c.X, c.Y, c.X + c.Width, c.Y + c.Height
	}
}

// Contains reports whether (x, y) lies in the command's bounds.
func (c DrawCommand) Contains(x, y float64) bool {
	x0, y0, x1, y1 := c.Bounds()
	return x >= x0 && x <= x1 && y >= y0 && y <= y1
}

// Theme holds every color the renderer uses.
type Theme struct {
	Name          string
	Background    string
	HeaderBg      string
	LabelBg       string
	WeekendBg     string
	GridLine      string
	TextPrimary   string
	TextSecondary string
	HoverBg       string
	TooltipBg     string
	TooltipBorder string
	Critical      string
	Neutral       string
	Today         string
	Status        map[Status]string
}

var statusColors = map[Status]string{
	StatusPending:    "#6b7280",
	StatusInProgress: "#3b82f6",
	StatusCompleted:  "#22c55e",
	StatusBlocked:    "#ef4444",
}

// LightTheme is the default palette.
func LightTheme() Theme {
	return Theme{
		Name:          "light",
		Background:    "#ffffff",
		HeaderBg:      "#f1f5f9",
		LabelBg:       "#f8fafc",
		WeekendBg:     "#e2e8f0",
		GridLine:      "#cbd5e1",
		TextPrimary:   "#1e293b",
		TextSecondary: "#64748b",
		HoverBg:       "#e2e8f0",
		TooltipBg:     "#ffffff",
		TooltipBorder: "#e2e8f0",
		Critical:      "#f97316",
		Neutral:       "#6b7280",
		Today:         "#ef4444",
		Status:        statusColors,
	}
}

// DarkTheme is the palette for dark surfaces.
func DarkTheme() Theme {
	return Theme{
		Name:          "dark",
		Background:    "#0f172a",
		HeaderBg:      "#1e293b",
		LabelBg:       "#111827",
		WeekendBg:     "#374151",
		GridLine:      "#374151",
		TextPrimary:   "#f3f4f6",
		TextSecondary: "#9ca3af",
		HoverBg:       "#374151",
		TooltipBg:     "#1f2937",
		TooltipBorder: "#374151",
		Critical:      "#f97316",
		Neutral:       "#6b7280",
		Today:         "#ef4444",
		Status:        statusColors,
	}
}

// ThemeByName returns the dark theme for "dark" and the light theme otherwise.
func ThemeByName(name string) Theme {
	if name == "dark" {
		return DarkTheme()
	}
	return LightTheme()
}

// StatusColor returns the bar color for status, falling back to Neutral.
func (t Theme) StatusColor(s Status) string {
	if c, ok := t.Status[s]; ok {
		return c
	}
	return t.Neutral
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // normalizes -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
