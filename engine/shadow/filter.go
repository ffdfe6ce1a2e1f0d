package shadow

import (
	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/node"
)

// Filter appends to dst every candidate whose world AABB passes the conservative
// IntersectsFast test against collider. Boxes that only partly overlap are kept.
//
// Parameters:
//   - collider: the volume to keep casters for
//   - candidates: the broad-phase caster set
//   - dst: the slice to append to
//
// Returns:
//   - []node.Node: dst with the kept candidates appended
func Filter(collider common.Collidable, candidates, dst []node.Node) []node.Node {
	for _, n := range candidates {
		if collider.IntersectsFast(n.WorldAABB()) {
			dst = append(dst, n)
		}
	}
	return dst
}

// Supplement appends every node of extra whose ID is not already in dst. It only ever
// adds casters.
func Supplement(dst, extra []node.Node) []node.Node {
	if len(extra) == 0 {
		return dst
	}
	seen := make(map[uint64]struct{}, len(dst))
	for _, n := range dst {
		seen[n.ID()] = struct{}{}
	}
	for _, n := range extra {
		if _, ok := seen[n.ID()]; ok {
			continue
		}
		seen[n.ID()] = struct{}{}
		dst = append(dst, n)
	}
	return dst
}
