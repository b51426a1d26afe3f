package dc

// GridSize is the number of cells in a WireHitGrid.
const GridSize = NumLayers * NumWires

// WireHitGrid records per-wire hit values of one superlayer, linearized as
// layer*NumWires + wire. A zero cell means no hit. The grid is a value
// type: assignment copies every cell.
type WireHitGrid struct {
	cells [GridSize]int
}

// LinearIndex maps (layer, wire) to a grid cell index.
func LinearIndex(layer, wire int) (int, error) {
	if layer < 0 || layer >= NumLayers {
		return 0, indexError("layer", layer, NumLayers)
	}
	if wire < 0 || wire >= NumWires {
		return 0, indexError("wire", wire, NumWires)
	}
	return layer*NumWires + wire, nil
}

// SplitIndex is the inverse of LinearIndex.
func SplitIndex(idx int) (layer, wire int) {
	return idx / NumWires, idx % NumWires
}

// Set stores value at (layer, wire).
func (g *WireHitGrid) Set(layer, wire, value int) error {
	i, err := LinearIndex(layer, wire)
	if err != nil {
		return err
	}
	g.cells[i] = value
	return nil
}

// Add increments the cell at (layer, wire) by value.
func (g *WireHitGrid) Add(layer, wire, value int) error {
	i, err := LinearIndex(layer, wire)
	if err != nil {
		return err
	}
	g.cells[i] += value
	return nil
}

// Get returns the value at (layer, wire).
func (g *WireHitGrid) Get(layer, wire int) (int, error) {
	i, err := LinearIndex(layer, wire)
	if err != nil {
		return 0, err
	}
	return g.cells[i], nil
}

// Clear zeroes every cell.
func (g *WireHitGrid) Clear() {
	g.cells = [GridSize]int{}
}

// Count returns the number of nonzero cells.
func (g *WireHitGrid) Count() int {
	n := 0
	for _, v := range g.cells {
		if v != 0 {
			n++
		}
	}
	return n
}

// each calls fn for every nonzero cell, layer-major and wire-ascending.
func (g *WireHitGrid) each(fn func(layer, wire, value int)) {
	for i, v := range g.cells {
		if v != 0 {
			fn(i/NumWires, i%NumWires, v)
		}
	}
}
