// Package symbol declares the Symbol Oracle contract (C1, §6): the external
// collaborator that turns a KiCad-style symbol source string into a
// bounding box and pin geometry. The oracle is the only place in the engine
// that depends on real symbol/font data; the engine itself treats it as a
// pure, cacheable, deterministic function and never inspects symbol files
// directly.
package symbol

// Orientation is the compass side a pin protrudes from, on the symbol's own
// unrotated bounding box.
type Orientation string

const (
	North Orientation = "N"
	South Orientation = "S"
	East  Orientation = "E"
	West  Orientation = "W"
)

// PinType is the electrical role the oracle reports for a pin. The layout
// engine stores it in port properties (§4.1) but does not interpret it —
// electrical rules checking is out of scope (§1).
type PinType string

const (
	PinInput       PinType = "input"
	PinOutput      PinType = "output"
	PinBidirectional PinType = "bidirectional"
	PinPower       PinType = "power"
	PinPassive     PinType = "passive"
	PinUnspecified PinType = "unspecified"
)

// BBox is a symbol's bounding box in symbol-space units (pre-scale).
type BBox struct {
	X, Y, W, H float64
}

// PinEndpoint is one pin on a symbol, in symbol-space units.
type PinEndpoint struct {
	Name        string
	Number      string
	X, Y        float64
	Orientation Orientation
	Type        PinType
}

// Info is everything the Nodes Builder needs from a symbol source (§6).
type Info struct {
	BBox         BBox
	PinEndpoints []PinEndpoint
}

// Oracle resolves symbol sources to geometry. Implementations are expected
// to be deterministic for identical input and side-effect free; the engine
// may call GetSymbolInfo repeatedly for the same source within one layout
// call and never caches results itself (§6).
type Oracle interface {
	GetSymbolInfo(symbolSource string) (Info, error)
}

// Func adapts a plain function to the Oracle interface, mirroring the
// common "adapter func type" idiom used across the corpus for small
// single-method interfaces.
type Func func(symbolSource string) (Info, error)

func (f Func) GetSymbolInfo(symbolSource string) (Info, error) {
	return f(symbolSource)
}
