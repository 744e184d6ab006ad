// Package field provides synthetic stand-ins for the planner's external
// collaborators: a quadtree surface mesh (the meshing engine) and a
// manufactured error field (the analysis engine). Together they let the study
// loop exercise the full mesh → analyze → estimate → refine cycle without a
// finite-element stack.
package field

import (
	"fmt"
	"sort"

	"github.com/adapt-sim/adapt-sim/adapt"
)

// Element is one leaf of the quadtree mesh, identified by its root cell and
// its (level, i, j) position within that cell's quadtree.
type Element struct {
	Root  int // index of the root cell, row-major
	Level int // refinement level below the root (0 = the root cell itself)
	I, J  int // cell coordinates within the root at this level, in [0, 2^Level)
}

// GridMesh is a quadtree-forest surface mesh over a rectangular domain at
// z = 0: a structured nx-by-ny grid of root cells, each the root of a
// quadtree whose leaves are the mesh elements. It implements adapt.Mesher.
type GridMesh struct {
	nx, ny   int
	cellSize float64 // edge length of a root cell
	maxLevel int     // refinement depth limit
	elements []Element
}

// NewGridMesh creates a mesh of nx-by-ny root cells with the given root cell
// edge length. maxLevel bounds how deep refinement may go.
func NewGridMesh(nx, ny int, cellSize float64, maxLevel int) (*GridMesh, error) {
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("grid dimensions %dx%d must be positive", nx, ny)
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("cell size %v must be > 0", cellSize)
	}
	if maxLevel < 0 {
		return nil, fmt.Errorf("max level %d must be >= 0", maxLevel)
	}
	m := &GridMesh{nx: nx, ny: ny, cellSize: cellSize, maxLevel: maxLevel}
	m.elements = make([]Element, 0, nx*ny)
	for r := 0; r < nx*ny; r++ {
		m.elements = append(m.elements, Element{Root: r})
	}
	return m, nil
}

// NewGradedGridMesh creates a mesh whose root cells start pre-refined to the
// given per-root levels (one level per root cell, row-major).
func NewGradedGridMesh(nx, ny int, cellSize float64, maxLevel int, levels []int) (*GridMesh, error) {
	m, err := NewGridMesh(nx, ny, cellSize, maxLevel)
	if err != nil {
		return nil, err
	}
	if len(levels) != nx*ny {
		return nil, fmt.Errorf("%d levels for %d root cells", len(levels), nx*ny)
	}
	m.elements = m.elements[:0]
	for r := 0; r < nx*ny; r++ {
		l := levels[r]
		if l < 0 {
			l = 0
		}
		if l > maxLevel {
			l = maxLevel
		}
		side := 1 << l
		for j := 0; j < side; j++ {
			for i := 0; i < side; i++ {
				m.elements = append(m.elements, Element{Root: r, Level: l, I: i, J: j})
			}
		}
	}
	m.sortElements()
	return m, nil
}

// ElementCount reports the current number of leaf elements.
func (m *GridMesh) ElementCount() int {
	return len(m.elements)
}

// Elements returns the current leaves in canonical order.
func (m *GridMesh) Elements() []Element {
	return m.elements
}

// Size returns the edge length of element e.
func (m *GridMesh) Size(e Element) float64 {
	return m.cellSize / float64(int(1)<<e.Level)
}

// Centroid returns the centroid of element e.
func (m *GridMesh) Centroid(e Element) adapt.Point3 {
	rx := e.Root % m.nx
	ry := e.Root / m.nx
	h := m.Size(e)
	return adapt.Point3{
		X: float64(rx)*m.cellSize + (float64(e.I)+0.5)*h,
		Y: float64(ry)*m.cellSize + (float64(e.J)+0.5)*h,
	}
}

// Centroids returns the centroids of all current elements, in element order.
func (m *GridMesh) Centroids() []adapt.Point3 {
	out := make([]adapt.Point3, len(m.elements))
	for i, e := range m.elements {
		out[i] = m.Centroid(e)
	}
	return out
}

// Refine splits every flagged element into its four children. Elements at
// the depth limit are left alone. Flags are matched to elements positionally.
func (m *GridMesh) Refine(flags []bool) error {
	if len(flags) != len(m.elements) {
		return fmt.Errorf("%d flags for %d elements", len(flags), len(m.elements))
	}
	next := make([]Element, 0, len(m.elements))
	for i, e := range m.elements {
		if flags[i] && e.Level < m.maxLevel {
			next = append(next, children(e)...)
		} else {
			next = append(next, e)
		}
	}
	m.elements = next
	m.sortElements()
	return nil
}

// Apply performs three-valued refinement: refine splits an element, hold
// keeps it, and coarsen merges a sibling group back into its parent, but
// only when all four siblings are present and all vote to coarsen, so the
// mesh never loses resolution one element at a time.
func (m *GridMesh) Apply(actions []adapt.RefineAction) error {
	if len(actions) != len(m.elements) {
		return fmt.Errorf("%d actions for %d elements", len(actions), len(m.elements))
	}

	// Count coarsen votes per parent.
	votes := make(map[Element]int)
	for i, e := range m.elements {
		if actions[i] == adapt.ActionCoarsen && e.Level > 0 {
			votes[parent(e)]++
		}
	}

	next := make([]Element, 0, len(m.elements))
	merged := make(map[Element]bool)
	for i, e := range m.elements {
		switch {
		case actions[i] == adapt.ActionRefine && e.Level < m.maxLevel:
			next = append(next, children(e)...)
		case actions[i] == adapt.ActionCoarsen && e.Level > 0 && votes[parent(e)] == 4:
			p := parent(e)
			if !merged[p] {
				merged[p] = true
				next = append(next, p)
			}
		default:
			next = append(next, e)
		}
	}
	m.elements = next
	m.sortElements()
	return nil
}

// Remesh regenerates the leaves from a target feature-size field: every root
// cell is split recursively until each leaf's edge length is at or below the
// requested size at its centroid, or the depth limit is reached.
func (m *GridMesh) Remesh(sizer adapt.FeatureSizer) error {
	if sizer == nil {
		return fmt.Errorf("feature sizer is required")
	}
	next := make([]Element, 0, len(m.elements))
	for r := 0; r < m.nx*m.ny; r++ {
		next = m.subdivide(next, Element{Root: r}, sizer)
	}
	m.elements = next
	m.sortElements()
	return nil
}

func (m *GridMesh) subdivide(acc []Element, e Element, sizer adapt.FeatureSizer) []Element {
	if e.Level < m.maxLevel && m.Size(e) > sizer.FeatureSize(m.Centroid(e)) {
		for _, c := range children(e) {
			acc = m.subdivide(acc, c, sizer)
		}
		return acc
	}
	return append(acc, e)
}

func children(e Element) []Element {
	return []Element{
		{Root: e.Root, Level: e.Level + 1, I: 2 * e.I, J: 2 * e.J},
		{Root: e.Root, Level: e.Level + 1, I: 2*e.I + 1, J: 2 * e.J},
		{Root: e.Root, Level: e.Level + 1, I: 2 * e.I, J: 2*e.J + 1},
		{Root: e.Root, Level: e.Level + 1, I: 2*e.I + 1, J: 2*e.J + 1},
	}
}

func parent(e Element) Element {
	return Element{Root: e.Root, Level: e.Level - 1, I: e.I / 2, J: e.J / 2}
}

// sortElements restores the canonical leaf order (root, then level, then
// row-major within the level) so element indices are deterministic across
// runs regardless of refinement history.
func (m *GridMesh) sortElements() {
	sort.Slice(m.elements, func(a, b int) bool {
		ea, eb := m.elements[a], m.elements[b]
		if ea.Root != eb.Root {
			return ea.Root < eb.Root
		}
		if ea.Level != eb.Level {
			return ea.Level < eb.Level
		}
		if ea.J != eb.J {
			return ea.J < eb.J
		}
		return ea.I < eb.I
	})
}
