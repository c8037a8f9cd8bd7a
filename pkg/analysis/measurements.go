package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/protedit/pkg/geometry"
	"github.com/philipparndt/protedit/pkg/pdb"
)

// ChainBreak is the CA-CA distance above which two consecutive residues are
// considered disconnected
const ChainBreak = 4.2

// SpacingInfo is the distance between two consecutive alpha carbons
type SpacingInfo struct {
	Chain  string
	From   int
	To     int
	Length float64
}

// MeasurementResult contains various measurements of a structure
type MeasurementResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	Volume        float64
	AtomCount     int
	HeteroCount   int
	ResidueCount  int
	ChainCount    int
	HelixResidues int
	SheetResidues int
	MinSpacing    float64
	MaxSpacing    float64
	AvgSpacing    float64
	AllSpacings   []SpacingInfo
}

// AnalyzeStructure performs comprehensive analysis on a structure
func AnalyzeStructure(s *pdb.Structure) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox: s.BoundingBox(),
		AtomCount:   s.AtomCount(),
		AllSpacings: make([]SpacingInfo, 0),
	}
	if !result.BoundingBox.Empty() {
		result.Dimensions = result.BoundingBox.Size()
		result.Volume = result.Dimensions.X * result.Dimensions.Y * result.Dimensions.Z
	}

	for _, a := range s.Atoms {
		if a.Hetero {
			result.HeteroCount++
		}
	}

	chains := make(map[string]bool)
	for _, r := range s.Residues() {
		result.ResidueCount++
		chains[r.Chain] = true
		switch r.SS {
		case pdb.Helix:
			result.HelixResidues++
		case pdb.Sheet:
			result.SheetResidues++
		}
	}
	result.ChainCount = len(chains)

	// Collect CA-CA spacings along each chain
	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, trace := range s.CATrace() {
		for i := 1; i < len(trace.Points); i++ {
			length := trace.Points[i-1].Distance(trace.Points[i])
			result.AllSpacings = append(result.AllSpacings, SpacingInfo{
				Chain:  trace.Chain,
				From:   s.Atoms[trace.Atoms[i-1]].Serial,
				To:     s.Atoms[trace.Atoms[i]].Serial,
				Length: length,
			})

			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
		}
	}

	if n := len(result.AllSpacings); n > 0 {
		result.MinSpacing = minLength
		result.MaxSpacing = maxLength
		result.AvgSpacing = totalLength / float64(n)
	}

	return result
}

// FindChainBreaks returns the spacings longer than threshold
func FindChainBreaks(result *MeasurementResult, threshold float64) []SpacingInfo {
	var breaks []SpacingInfo
	for _, sp := range result.AllSpacings {
		if sp.Length > threshold {
			breaks = append(breaks, sp)
		}
	}
	return breaks
}

// FindLongestSpacings returns the N longest CA-CA spacings
func FindLongestSpacings(result *MeasurementResult, count int) []SpacingInfo {
	spacings := make([]SpacingInfo, len(result.AllSpacings))
	copy(spacings, result.AllSpacings)

	sort.SliceStable(spacings, func(i, j int) bool {
		return spacings[i].Length > spacings[j].Length
	})

	if count > len(spacings) {
		count = len(spacings)
	}
	return spacings[:count]
}

// Distance calculates the distance between two points
func Distance(p1, p2 geometry.Vector3) float64 {
	return p1.Distance(p2)
}

// Angle returns the angle at b formed by a-b-c, in degrees. Degenerate
// inputs give 0.
func Angle(a, b, c geometry.Vector3) float64 {
	u := a.Sub(b)
	v := c.Sub(b)
	lu, lv := u.Length(), v.Length()
	if lu == 0 || lv == 0 {
		return 0
	}
	cos := u.Dot(v) / (lu * lv)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// MeasureAtoms measures between atoms given by serial number: a distance for
// two atoms, an angle for three.
func MeasureAtoms(s *pdb.Structure, serials ...int) (string, error) {
	points := make([]geometry.Vector3, len(serials))
	for k, serial := range serials {
		i := indexOf(s, serial)
		if i < 0 {
			return "", fmt.Errorf("unknown atom %d", serial)
		}
		points[k] = s.Atoms[i].Position
	}

	switch len(points) {
	case 2:
		return "distance " + FormatMeasurement(Distance(points[0], points[1]), "Å"), nil
	case 3:
		return fmt.Sprintf("angle %.1f°", Angle(points[0], points[1], points[2])), nil
	default:
		return "", fmt.Errorf("measure needs 2 or 3 atoms, got %d", len(points))
	}
}

// FindNearestAtom finds the atom nearest to a given point
func FindNearestAtom(s *pdb.Structure, point geometry.Vector3) (pdb.Atom, float64) {
	var nearest pdb.Atom
	minDistance := math.MaxFloat64

	for _, a := range s.Atoms {
		if d := point.Distance(a.Position); d < minDistance {
			minDistance = d
			nearest = a
		}
	}
	return nearest, minDistance
}

func indexOf(s *pdb.Structure, serial int) int {
	for i, a := range s.Atoms {
		if a.Serial == serial {
			return i
		}
	}
	return -1
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "Å"
	}
	return fmt.Sprintf("%.3f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
