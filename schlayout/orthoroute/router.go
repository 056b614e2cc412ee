package orthoroute

import (
	"context"

	"github.com/jonfodi/diode-pcb-sub000/internal/logctx"
	"github.com/jonfodi/diode-pcb-sub000/schconfig"
	"github.com/jonfodi/diode-pcb-sub000/schgraph"
	"github.com/jonfodi/diode-pcb-sub000/sgeo"
)

// Route is the Orthogonal Router (C8, §4.7) entry point. For every 2-port
// hyperedge it computes an orthogonal polyline around obstacles and
// respecting each endpoint's visibility direction, then builds the
// resulting schgraph.Edge. Hyperedges the router cannot route (no path
// found, or the result fails the orthogonality check) are dropped: logged
// and skipped, not returned as an error, matching §7's "Router-disconnected"
// and "Router-non-orthogonal" taxonomy entries — a handful of unroutable
// nets must not fail the whole layout call.
func Route(ctx context.Context, hyperedges []schgraph.Hyperedge, obstacles []schgraph.Obstacle, cfg schconfig.Config) []*schgraph.Edge {
	if len(hyperedges) == 0 {
		return nil
	}

	anchors := make([]sgeo.Point, 0, len(hyperedges)*2)
	for _, he := range hyperedges {
		for _, a := range he.Anchors {
			anchors = append(anchors, a.Pos)
		}
	}
	rg := buildRoutingGraph(obstacles, anchors, cfg)

	var polylines [][]sgeo.Point
	var kept []schgraph.Hyperedge
	for _, he := range hyperedges {
		if len(he.Anchors) != 2 {
			logctx.Debug(ctx, "orthoroute: skipping non-binary hyperedge", "hyperedge_id", he.ID, "anchor_count", len(he.Anchors))
			continue
		}
		if he.Context.NetID == "" {
			logctx.Debug(ctx, "orthoroute: dropping edge with no context", "error", &schgraph.RouterMissingContextError{EdgeID: he.ID})
			continue
		}
		pts, ok := routeOne(rg, he.Anchors[0], he.Anchors[1], cfg.RouterMaxIterations)
		if !ok {
			logctx.Debug(ctx, "orthoroute: no route found", "error", &schgraph.DisconnectedRouteError{HyperedgeID: he.ID})
			continue
		}
		if !sgeo.IsOrthogonalPolyline(pts) {
			logctx.Debug(ctx, "orthoroute: discarding non-orthogonal route", "error", &schgraph.NonOrthogonalRouteError{HyperedgeID: he.ID})
			continue
		}
		polylines = append(polylines, pts)
		kept = append(kept, he)
	}

	nudge(polylines)

	edges := make([]*schgraph.Edge, 0, len(kept))
	for i, he := range kept {
		edges = append(edges, &schgraph.Edge{
			ID:                  he.ID,
			NetID:               he.Context.NetID,
			SourcePort:          he.Anchors[0].PortID,
			TargetPort:          he.Anchors[1].PortID,
			SourceNode:          he.Anchors[0].NodeID,
			TargetNode:          he.Anchors[1].NodeID,
			Polyline:            polylines[i],
			OriginalHyperedgeID: he.Context.OriginalHyperedgeID,
		})
	}
	return edges
}

// routeOne finds an orthogonal path between two port anchors through the
// routing graph, always starting and ending with the exact anchor
// positions (§4.7's endpoint-exact-match rule: the router's own first/last
// grid points are intermediate, never the reported endpoints — prepending/
// appending the exact anchor position is unconditional here, not a
// fallback for a mismatch).
func routeOne(rg *routingGraph, src, dst schgraph.PortAnchor, maxIterations int) ([]sgeo.Point, bool) {
	if src.Pos.Equal(dst.Pos) {
		return []sgeo.Point{src.Pos, dst.Pos}, true
	}

	srcNode, ok := rg.entryNode(src.Pos, src.Visibility)
	if !ok {
		return nil, false
	}
	dstNode, ok := rg.entryNode(dst.Pos, dst.Visibility)
	if !ok {
		return nil, false
	}

	path, ok := shortestPath(rg, srcNode, dstNode, maxIterations)
	if !ok {
		return nil, false
	}

	pts := make([]sgeo.Point, 0, len(path)+2)
	pts = append(pts, src.Pos)
	for _, id := range path {
		pts = append(pts, rg.nodes[id].pos)
	}
	pts = append(pts, dst.Pos)
	return simplify(pts), true
}

// simplify removes consecutive duplicate points and collinear intermediate
// points, keeping only the real bends.
func simplify(pts []sgeo.Point) []sgeo.Point {
	if len(pts) <= 1 {
		return pts
	}
	deduped := pts[:1]
	for _, p := range pts[1:] {
		if !p.Equal(deduped[len(deduped)-1]) {
			deduped = append(deduped, p)
		}
	}
	if len(deduped) <= 2 {
		return deduped
	}

	out := deduped[:1]
	for i := 1; i < len(deduped)-1; i++ {
		prev := out[len(out)-1]
		cur := deduped[i]
		next := deduped[i+1]
		sameX := prev.X == cur.X && cur.X == next.X
		sameY := prev.Y == cur.Y && cur.Y == next.Y
		if sameX || sameY {
			continue // collinear, drop the intermediate point
		}
		out = append(out, cur)
	}
	out = append(out, deduped[len(deduped)-1])
	return out
}
