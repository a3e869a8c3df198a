package hcluster

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// Orientation names the side of the plot the tree root faces. It only
// affects how a renderer maps the canonical coordinates onto axes; the
// coordinates themselves are always computed root-up.
type Orientation string

const (
	OrientationTop    Orientation = "top"
	OrientationBottom Orientation = "bottom"
	OrientationLeft   Orientation = "left"
	OrientationRight  Orientation = "right"
)

// TruncateMode selects how large hierarchies are condensed before layout.
type TruncateMode string

const (
	// TruncateNone lays out the full tree.
	TruncateNone TruncateMode = ""

	// TruncateLastP shows only the P highest-level clusters: the last
	// P-1 merges, with everything below collapsed into "(count)" leaves.
	TruncateLastP TruncateMode = "lastp"

	// TruncateMTICA and TruncateLevel show links up to depth P from the
	// root, collapsing deeper structure into "(count)" leaves.
	TruncateMTICA TruncateMode = "mtica"
	TruncateLevel TruncateMode = "level"
)

// DefaultLinkColorPalette returns the palette cycled over below-threshold
// link clusters when DendrogramOptions.LinkColorPalette is not set.
func DefaultLinkColorPalette() []string {
	return []string{"g", "r", "c", "m", "y", "k"}
}

const defaultAboveThresholdColor = "b"

// NoColorThreshold as DendrogramOptions.ColorThreshold disables
// below-threshold coloring: every link takes AboveThresholdColor.
var NoColorThreshold = math.Inf(-1)

// DendrogramOptions configures DendrogramLayout. The zero value lays out
// the full tree, oriented top, with the default palette and a color
// threshold of 0.7 times the maximum merge height.
type DendrogramOptions struct {
	// P is the truncation parameter; see TruncateMode. Ignored without a
	// truncation mode; 0 defaults to 30.
	P int

	// TruncateMode condenses the tree before layout.
	TruncateMode TruncateMode

	// Orientation must be one of top, bottom, left, right. Empty means
	// top.
	Orientation Orientation

	// ColorThreshold separates cluster-colored links (height <= threshold)
	// from AboveThresholdColor links. Zero means 0.7 * max merge height; a
	// negative value (NoColorThreshold) sits below every height and so
	// colors nothing.
	ColorThreshold float64

	// AboveThresholdColor is the color tag of links above the threshold.
	// Empty means "b".
	AboveThresholdColor string

	// LinkColorPalette is cycled per below-threshold link cluster, in
	// left-to-right order. Nil means DefaultLinkColorPalette. The
	// palette travels in the options; there is no process-wide mutable
	// default.
	LinkColorPalette []string

	// Labels supplies leaf label strings by observation index. Nil means
	// the observation index itself. Must have one entry per observation
	// when set.
	Labels []string

	// ShowContracted collects (x, height) marks of the links hidden
	// inside each contracted cluster.
	ShowContracted bool
}

// Dendrogram is the 2-D layout geometry of a linkage matrix. Each link i
// (in emission order, children before parents) paints the bracket
//
//	(Icoord[i][0], Dcoord[i][0]) .. (Icoord[i][3], Dcoord[i][3])
//
// with Dcoord holding [leftChildTop, height, height, rightChildTop]. Ivl
// and Leaves describe the leaf axis in plotted order; ColorList carries one
// color tag per link.
type Dendrogram struct {
	Icoord    [][4]float64
	Dcoord    [][4]float64
	Ivl       []string
	Leaves    []int
	ColorList []string

	// ContractionMarks holds (x, height) pairs for links collapsed by
	// truncation, when requested.
	ContractionMarks [][2]float64
}

// DendrogramLayout computes dendrogram plotting geometry for Z. Leaves sit
// at x = 5, 15, 25, ... in pre-order; each internal bracket spans the
// midpoints of its children's brackets at its merge height.
func DendrogramLayout(Z [][4]float64, opt DendrogramOptions) (*Dendrogram, error) {
	if err := ValidateLinkage(Z); err != nil {
		return nil, err
	}
	n := len(Z) + 1

	switch opt.Orientation {
	case "", OrientationTop, OrientationBottom, OrientationLeft, OrientationRight:
	default:
		return nil, fmt.Errorf("%w: orientation %q is not one of top, bottom, left, right", ErrValidation, opt.Orientation)
	}
	switch opt.TruncateMode {
	case TruncateNone, TruncateLastP, TruncateMTICA, TruncateLevel:
	default:
		return nil, fmt.Errorf("%w: unknown truncate mode %q", ErrValidation, opt.TruncateMode)
	}
	if opt.Labels != nil && len(opt.Labels) != n {
		return nil, fmt.Errorf("%w: got %d leaf labels, want %d", ErrValidation, len(opt.Labels), n)
	}

	threshold := opt.ColorThreshold
	if threshold == 0 {
		threshold = 0.7 * floats.Max(linkHeights(Z))
	}
	palette := opt.LinkColorPalette
	if palette == nil {
		palette = DefaultLinkColorPalette()
	}
	above := opt.AboveThresholdColor
	if above == "" {
		above = defaultAboveThresholdColor
	}
	p := opt.P
	if p <= 0 {
		p = 30
	}

	s := &layoutState{
		Z:              Z,
		n:              n,
		p:              p,
		mode:           opt.TruncateMode,
		threshold:      threshold,
		palette:        palette,
		above:          above,
		labels:         opt.Labels,
		showContracted: opt.ShowContracted,
		res:            &Dendrogram{},
	}
	s.visit(2*n-2, 0, "")
	return s.res, nil
}

type layoutState struct {
	Z              [][4]float64
	n              int
	p              int
	mode           TruncateMode
	threshold      float64
	palette        []string
	above          string
	labels         []string
	showContracted bool

	nextLeaf  int
	nextColor int
	res       *Dendrogram
}

// visit lays out the subtree rooted at node id and returns the x center of
// its bracket (or leaf position) and its top height. color carries the
// current below-threshold cluster color, empty when above the threshold.
func (s *layoutState) visit(id, level int, color string) (x, h float64) {
	if id < s.n {
		return s.emitLeaf(id, s.leafLabel(id)), 0
	}

	row := id - s.n
	if s.contracted(row, level) {
		lx := s.emitLeaf(id, fmt.Sprintf("(%d)", int(s.Z[row][3])))
		if s.showContracted {
			s.collectMarks(row, lx)
		}
		return lx, 0
	}

	h = s.Z[row][2]
	c := s.above
	if h <= s.threshold {
		if color == "" {
			color = s.palette[s.nextColor%len(s.palette)]
			s.nextColor++
		}
		c = color
	} else {
		color = ""
	}

	xl, hl := s.visit(int(s.Z[row][0]), level+1, color)
	xr, hr := s.visit(int(s.Z[row][1]), level+1, color)

	s.res.Icoord = append(s.res.Icoord, [4]float64{xl, xl, xr, xr})
	s.res.Dcoord = append(s.res.Dcoord, [4]float64{hl, h, h, hr})
	s.res.ColorList = append(s.res.ColorList, c)
	return (xl + xr) / 2, h
}

// contracted reports whether the link at row should collapse into a single
// counted leaf under the active truncation mode.
func (s *layoutState) contracted(row, level int) bool {
	switch s.mode {
	case TruncateLastP:
		return row < s.n-s.p
	case TruncateMTICA, TruncateLevel:
		return level > s.p
	}
	return false
}

// emitLeaf claims the next leaf slot for node id. Leaf k sits at x = 5+10k.
func (s *layoutState) emitLeaf(id int, label string) float64 {
	x := 5.0 + 10.0*float64(s.nextLeaf)
	s.nextLeaf++
	s.res.Leaves = append(s.res.Leaves, id)
	s.res.Ivl = append(s.res.Ivl, label)
	return x
}

func (s *layoutState) leafLabel(i int) string {
	if s.labels != nil {
		return s.labels[i]
	}
	return strconv.Itoa(i)
}

// collectMarks records the heights of every link hidden inside the
// contracted subtree at row, at the contracted leaf's x position.
func (s *layoutState) collectMarks(row int, x float64) {
	stack := []int{row}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s.res.ContractionMarks = append(s.res.ContractionMarks, [2]float64{x, s.Z[r][2]})
		for _, c := range []int{int(s.Z[r][0]), int(s.Z[r][1])} {
			if c >= s.n {
				stack = append(stack, c-s.n)
			}
		}
	}
}
