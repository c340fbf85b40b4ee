package diagram

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/lucasb-eyer/go-colorful"
)

// envPrefix is prepended to every environment override, e.g. DIAGRAM_MIN_SCALE.
const envPrefix = "diagram"

// Style is the fill and stroke color of one entity state, as hex strings.
type Style struct {
	Fill   string `toml:"fill" envconfig:"FILL" validate:"rgbhex"`
	Stroke string `toml:"stroke" envconfig:"STROKE" validate:"rgbhex"`
}

// StateStyles holds the per-state styles of an entity kind.
type StateStyles struct {
	Normal   Style `toml:"normal"`
	Hover    Style `toml:"hover"`
	Selected Style `toml:"selected"`
}

// Config enumerates the tunables of an Editor.
type Config struct {
	MinScale    float64 `toml:"min_scale" envconfig:"MIN_SCALE" validate:"gt=0"`
	MaxScale    float64 `toml:"max_scale" envconfig:"MAX_SCALE" validate:"gtfield=MinScale"`
	WorldExtent float64 `toml:"world_extent" envconfig:"WORLD_EXTENT" validate:"gt=0"`

	Node StateStyles `toml:"node"`
	Edge StateStyles `toml:"edge"`

	NodeLineWidth float64 `toml:"node_line_width" envconfig:"NODE_LINE_WIDTH" validate:"gte=0"`
	EdgeLineWidth float64 `toml:"edge_line_width" envconfig:"EDGE_LINE_WIDTH" validate:"gte=0"`
	ArrowLength   float64 `toml:"arrow_length" envconfig:"ARROW_LENGTH" validate:"gte=0"`
	ArrowWidth    float64 `toml:"arrow_width" envconfig:"ARROW_WIDTH" validate:"gte=0"`

	GridSpacing float64 `toml:"grid_spacing" envconfig:"GRID_SPACING" validate:"gt=0"`
	GridVisible bool    `toml:"grid_visible" envconfig:"GRID_VISIBLE"`
	Background  string  `toml:"background" envconfig:"BACKGROUND" validate:"rgbhex"`
	GridColor   string  `toml:"grid_color" envconfig:"GRID_COLOR" validate:"rgbhex"`
	LabelColor  string  `toml:"label_color" envconfig:"LABEL_COLOR" validate:"rgbhex"`

	// HitProbe is the side of the square probed around the pointer, in view units.
	HitProbe float64 `toml:"hit_probe" envconfig:"HIT_PROBE" validate:"gt=0"`
	// DragDeadZone is the pointer travel in pixels before a press becomes a drag.
	DragDeadZone float64 `toml:"drag_dead_zone" envconfig:"DRAG_DEAD_ZONE" validate:"gte=0"`
	// WheelZoomStep is the fractional scale change per wheel notch.
	WheelZoomStep float64 `toml:"wheel_zoom_step" envconfig:"WHEEL_ZOOM_STEP" validate:"gt=0,lt=1"`

	Debug bool `toml:"debug" envconfig:"DEBUG"`
	// SnapshotDir receives the PNGs written by WriteSnapshots.
	SnapshotDir string `toml:"snapshot_dir" envconfig:"SNAPSHOT_DIR" validate:"required"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		MinScale:    defaultMinScale,
		MaxScale:    defaultMaxScale,
		WorldExtent: 100000,
		Node: StateStyles{
			Normal:   Style{Fill: "#2b3a55", Stroke: "#9fb3d9"},
			Hover:    Style{Fill: "#35507a", Stroke: "#ffffff"},
			Selected: Style{Fill: "#5a3d7a", Stroke: "#f2c94c"},
		},
		Edge: StateStyles{
			Normal:   Style{Fill: "#9fb3d9", Stroke: "#9fb3d9"},
			Hover:    Style{Fill: "#ffffff", Stroke: "#ffffff"},
			Selected: Style{Fill: "#f2c94c", Stroke: "#f2c94c"},
		},
		NodeLineWidth: 2,
		EdgeLineWidth: 2,
		ArrowLength:   12,
		ArrowWidth:    10,
		GridSpacing:   40,
		GridVisible:   true,
		Background:    "#1b1e2b",
		GridColor:     "#262a3b",
		LabelColor:    "#e6e6e6",
		HitProbe:      2,
		DragDeadZone:  4,
		WheelZoomStep: 0.1,
		SnapshotDir:   "snapshots",
	}
}

// LoadConfig reads a TOML file over the defaults, then applies DIAGRAM_*
// environment overrides, then validates. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("load config env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("rgbhex", validRGBHex); err != nil {
		panic(err)
	}
	return v
}

// validRGBHex accepts the #rgb and #rrggbb forms the palette parses.
// colorful.Hex alone reads #rrggbbaa as #rrggbb, so the length is checked
// first.
func validRGBHex(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 4 && len(s) != 7 || s[0] != '#' {
		return false
	}
	if _, err := strconv.ParseUint(s[1:], 16, 32); err != nil {
		return false
	}
	_, err := colorful.Hex(s)
	return err == nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, formatFieldError(fe))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	case "gtfield":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "rgbhex":
		return fmt.Sprintf("%s must be a #rgb or #rrggbb color, got %q", field, fe.Value())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// palette is a Config with every color resolved.
type palette struct {
	node       [3]resolvedStyle
	edge       [3]resolvedStyle
	background Color
	grid       Color
	label      Color
}

type resolvedStyle struct {
	fill, stroke Color
}

func (c *Config) palette() (palette, error) {
	var p palette
	var err error
	parse := func(hex string) Color {
		if err != nil {
			return Color{}
		}
		var col colorful.Color
		col, err = colorful.Hex(hex)
		if err != nil {
			err = fmt.Errorf("parse color %q: %w", hex, err)
			return Color{}
		}
		return Color{R: col.R, G: col.G, B: col.B, A: 1}
	}
	styles := func(s StateStyles) [3]resolvedStyle {
		return [3]resolvedStyle{
			StateNormal:   {fill: parse(s.Normal.Fill), stroke: parse(s.Normal.Stroke)},
			StateHover:    {fill: parse(s.Hover.Fill), stroke: parse(s.Hover.Stroke)},
			StateSelected: {fill: parse(s.Selected.Fill), stroke: parse(s.Selected.Stroke)},
		}
	}
	p.node = styles(c.Node)
	p.edge = styles(c.Edge)
	p.background = parse(c.Background)
	p.grid = parse(c.GridColor)
	p.label = parse(c.LabelColor)
	return p, err
}

// WriteTOML encodes the config as TOML.
func (c *Config) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
