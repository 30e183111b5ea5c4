package zone

import (
	"fmt"

	"github.com/1broseidon/zonesnap/internal/geometry"
)

// Config describes one zone of a layout. The rectangle is expressed as
// fractions of the owning screen so a layout can be recomputed for any
// display geometry.
type Config struct {
	Number int     `yaml:"number" json:"number"`
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// AbsoluteRect computes the zone's rectangle on a concrete screen.
func (c Config) AbsoluteRect(screen geometry.Rect) geometry.Rect {
	return geometry.Rect{
		X:      screen.X + c.X*screen.Width,
		Y:      screen.Y + c.Y*screen.Height,
		Width:  c.Width * screen.Width,
		Height: c.Height * screen.Height,
	}
}

func (c Config) validate() error {
	if c.Number <= 0 {
		return fmt.Errorf("zone number must be positive, got %d", c.Number)
	}
	if c.X < 0 || c.X > 1 || c.Y < 0 || c.Y > 1 {
		return fmt.Errorf("zone %d origin fractions must be in [0,1]", c.Number)
	}
	if c.Width <= 0 || c.Width > 1 || c.Height <= 0 || c.Height > 1 {
		return fmt.Errorf("zone %d size fractions must be in (0,1]", c.Number)
	}
	if c.X+c.Width > 1.0001 || c.Y+c.Height > 1.0001 {
		return fmt.Errorf("zone %d extends past the screen edge", c.Number)
	}
	return nil
}

// Layout is a named ordered collection of zones. Zone order is significant:
// auto-association picks the first matching zone in this order.
type Layout struct {
	Name  string
	Zones []Config
}

// Zone returns the zone with the given number, if present.
func (l Layout) Zone(number int) (Config, bool) {
	for _, z := range l.Zones {
		if z.Number == number {
			return z, true
		}
	}
	return Config{}, false
}

// Validate checks zone numbers are unique and fractions are sane.
func (l Layout) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("layout name must not be empty")
	}
	if len(l.Zones) == 0 {
		return fmt.Errorf("layout %q has no zones", l.Name)
	}
	seen := make(map[int]struct{}, len(l.Zones))
	for _, z := range l.Zones {
		if err := z.validate(); err != nil {
			return fmt.Errorf("layout %q: %w", l.Name, err)
		}
		if _, dup := seen[z.Number]; dup {
			return fmt.Errorf("layout %q: duplicate zone number %d", l.Name, z.Number)
		}
		seen[z.Number] = struct{}{}
	}
	return nil
}
