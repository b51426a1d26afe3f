package dc

import "math"

// Detector dimensions.
const (
	NumLayers      = 6   // wire layers per superlayer
	NumWires       = 112 // sense wires per layer
	NumSuperlayers = 6   // superlayers per sector
	NumSectors     = 6   // sectors, numbered 1..NumSectors
	NumRegions     = 3   // two superlayers per region
)

// Nominal distance of each superlayer's first layer from the target,
// measured along the sector mid-plane (cm).
var superlayerDistance = [NumSuperlayers]float64{228.1, 238.8, 347.7, 364.6, 500.6, 528.3}

// Nominal spacing between consecutive layers of a superlayer (cm). Cells
// grow with distance from the target.
var layerPitch = [NumSuperlayers]float64{0.94, 1.02, 1.56, 1.66, 2.46, 2.58}

// LayerY returns the nominal mid-plane coordinate (cm) of a layer in a
// superlayer. Out-of-range indices yield NaN.
func LayerY(superlayer, layer int) float64 {
	if superlayer < 0 || superlayer >= NumSuperlayers || layer < 0 || layer >= NumLayers {
		return math.NaN()
	}
	return superlayerDistance[superlayer] + float64(layer)*layerPitch[superlayer]
}

// RegionOf returns the detector region (0..2) of a superlayer, or -1.
func RegionOf(superlayer int) int {
	if superlayer < 0 || superlayer >= NumSuperlayers {
		return -1
	}
	return superlayer / 2
}
