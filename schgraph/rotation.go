package schgraph

import "github.com/jonfodi/diode-pcb-sub000/sgeo"

// steps90 normalizes a rotation in degrees to a count of 90-degree clockwise
// steps in [0, 4). Rotation is normalized to [0, 360) at the NodePositions
// boundary (§6); 360 itself collapses to 0 here too (§8 boundary behavior:
// "Node rotated 360: equivalent to rotation 0").
func steps90(rotationDegrees int) int {
	r := ((rotationDegrees % 360) + 360) % 360
	return (r / 90) % 4
}

// AbsolutePortPosition returns a port's absolute position: the node's
// top-left plus the port's local offset, rotated by the node's rotation
// around the node's geometric center (§3 invariant 1, §4.10's rotation
// paragraph).
func AbsolutePortPosition(n *Node, p *Port) sgeo.Point {
	tl := n.TopLeft()
	local := sgeo.Point{X: tl.X + p.X, Y: tl.Y + p.Y}
	if n.Rotation == 0 {
		return local
	}
	center := sgeo.Point{X: tl.X + n.Width/2, Y: tl.Y + n.Height/2}
	return rotateAroundClockwise(local, center, steps90(n.Rotation))
}

// rotateAroundClockwise rotates p around center by steps*90 degrees
// clockwise in a y-down pixel coordinate system.
func rotateAroundClockwise(p, center sgeo.Point, steps int) sgeo.Point {
	dx := p.X - center.X
	dy := p.Y - center.Y
	for i := 0; i < steps; i++ {
		// Clockwise rotation by 90 in a y-down system: (dx, dy) -> (-dy, dx).
		dx, dy = -dy, dx
	}
	return sgeo.Point{X: center.X + dx, Y: center.Y + dy}
}

// PortVisibilityDirection derives a port's visibility direction from its
// side, rotated clockwise by the owning node's rotation (§4.3).
func PortVisibilityDirection(n *Node, p *Port) VisibilityDirection {
	if p.Side == SideAll || p.Side == "" {
		return VisAll
	}
	side := p.Side.RotateClockwise(steps90(n.Rotation))
	switch side {
	case SideN:
		return VisN
	case SideS:
		return VisS
	case SideE:
		return VisE
	case SideW:
		return VisW
	default:
		return VisAll
	}
}
