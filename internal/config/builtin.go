package config

// builtinLayouts are always available; a config file can override any of
// them by redefining the same name.
func builtinLayouts() map[string]LayoutSpec {
	return map[string]LayoutSpec{
		"halves": {
			Zones: []ZoneSpec{
				{Number: 1, X: 0, Y: 0, Width: 0.5, Height: 1},
				{Number: 2, X: 0.5, Y: 0, Width: 0.5, Height: 1},
			},
		},
		"thirds": {
			Zones: []ZoneSpec{
				{Number: 1, X: 0, Y: 0, Width: 1.0 / 3, Height: 1},
				{Number: 2, X: 1.0 / 3, Y: 0, Width: 1.0 / 3, Height: 1},
				{Number: 3, X: 2.0 / 3, Y: 0, Width: 1.0 / 3, Height: 1},
			},
		},
		"grid": {
			Zones: []ZoneSpec{
				{Number: 1, X: 0, Y: 0, Width: 0.5, Height: 0.5},
				{Number: 2, X: 0.5, Y: 0, Width: 0.5, Height: 0.5},
				{Number: 3, X: 0, Y: 0.5, Width: 0.5, Height: 0.5},
				{Number: 4, X: 0.5, Y: 0.5, Width: 0.5, Height: 0.5},
			},
		},
		"main-side": {
			Zones: []ZoneSpec{
				{Number: 1, X: 0, Y: 0, Width: 0.65, Height: 1},
				{Number: 2, X: 0.65, Y: 0, Width: 0.35, Height: 0.5},
				{Number: 3, X: 0.65, Y: 0.5, Width: 0.35, Height: 0.5},
			},
		},
	}
}
