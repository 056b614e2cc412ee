// Package schconfig is the engine's flat configuration record (§6, §9's
// "Builder vs. configuration" note): every option has a default, and a
// Config is constructed once per engine instance and treated as frozen —
// there is no nested optional-field builder, matching the "configuration
// record... replaces nested optional-field configuration objects" decision.
package schconfig

// Direction is the placement pass's primary axis (§6).
type Direction string

const (
	DirLeft  Direction = "LEFT"
	DirRight Direction = "RIGHT"
	DirUp    Direction = "UP"
	DirDown  Direction = "DOWN"
)

// GridSnap controls grid-snapping of node top-left corners (§4.10).
type GridSnap struct {
	Enabled bool
	Size    float64
}

// NodeSize is a per-kind minimum size constraint (§6's node_sizes.*).
type NodeSize struct {
	Width, Height float64
}

// Config is the engine's single configuration record.
type Config struct {
	Direction               Direction
	Spacing                 float64
	Padding                 float64
	NetConnectionThreshold  float64
	HideLabelsOnConnectedPorts bool
	GridSnap                GridSnap
	ShowPortLabels          bool
	ShowComponentValues     bool
	ShowFootprints          bool
	NodeSizes               map[string]NodeSize

	// RouterObstacleBuffer and RouterMaxIterations are router-internal knobs
	// from §4.7 ("small configurable buffer", "hard iteration cap").
	RouterObstacleBuffer float64
	RouterMaxIterations  int

	// LabelSegmentThreshold is the §4.9 "exceeds 50 pixels" cutoff, exposed
	// as a config knob rather than a hardcoded constant so tests can probe
	// the boundary cheaply.
	LabelSegmentThreshold float64
}

// Default returns the configuration record with every default from §6.
func Default() Config {
	return Config{
		Direction:              DirLeft,
		Spacing:                20,
		Padding:                20,
		NetConnectionThreshold: 300,
		HideLabelsOnConnectedPorts: true,
		GridSnap: GridSnap{
			Enabled: true,
			Size:    12.7,
		},
		ShowPortLabels:      true,
		ShowComponentValues: true,
		ShowFootprints:      true,
		NodeSizes: map[string]NodeSize{
			"module":    {Width: 60, Height: 40},
			"component": {Width: 40, Height: 20},
		},
		RouterObstacleBuffer:  6,
		RouterMaxIterations:   20000,
		LabelSegmentThreshold: 50,
	}
}

// NodeSizeFor returns the configured minimum size for kind, falling back to
// the component minimum when kind has no dedicated entry.
func (c Config) NodeSizeFor(kind string) NodeSize {
	if sz, ok := c.NodeSizes[kind]; ok {
		return sz
	}
	return c.NodeSizes["component"]
}
