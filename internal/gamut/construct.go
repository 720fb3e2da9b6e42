/*
NAME
  construct.go

DESCRIPTION
  construct.go builds a GBD from a set of RGB primaries: it samples each
  hue slice's polyline by a coarse luma/chroma grid walk followed by fine
  sampling at every in/out-of-gamut transition, locates the slice's cusp,
  and derives the VP algorithm family's two "fake" focal points from it.
  Slices are independent, so they're built in parallel across a worker
  pool sized to the machine.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gamut

import (
	"math"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/ausocean/utils/logging"

	"github.com/crtlab/gamutthingy/internal/colorspace"
	"github.com/crtlab/gamutthingy/internal/mathutil"
	"github.com/crtlab/gamutthingy/internal/tables"
)

// Params bundles a gamut's construction inputs: its name, RGB primaries and
// whitepoint (as CIE1931 xy), the chromatic-adaptation transform to use if
// the whitepoint isn't D65, and an optional CRT whose emulated output
// defines what "in bounds" means in place of the ideal primaries.
type Params struct {
	Name       string
	Primaries  tables.Primaries
	Whitepoint [2]float64
	CAT        tables.CATKind
	CRT        CRTEmulator
	Spiral     SpiralCARISMA
	Log        logging.Logger
}

// New builds a gamut boundary descriptor from p.
func New(p Params) (*GBD, error) {
	toXYZ := func(xy [2]float64) mathutil.Vec3 {
		return mathutil.XyYToXYZ(mathutil.Vec3{X: xy[0], Y: xy[1], Z: 1.0})
	}

	redXYZ := toXYZ([2]float64{p.Primaries.R[0], p.Primaries.R[1]})
	greenXYZ := toXYZ([2]float64{p.Primaries.G[0], p.Primaries.G[1]})
	blueXYZ := toXYZ([2]float64{p.Primaries.B[0], p.Primaries.B[1]})
	whiteXYZ := toXYZ(p.Whitepoint)

	needsAdapt := math.Abs(p.Whitepoint[0]-colorspace.D65.X) > mathutil.Epsilon ||
		math.Abs(p.Whitepoint[1]-colorspace.D65.Y) > mathutil.Epsilon

	npm, err := colorspace.BuildNPM(redXYZ, greenXYZ, blueXYZ, whiteXYZ, needsAdapt, p.CAT)
	if err != nil {
		return nil, errors.Wrapf(err, "gamut: building %s", p.Name)
	}

	g := &GBD{
		Name:     p.Name,
		NPM:      npm,
		RedXYZ:   redXYZ,
		GreenXYZ: greenXYZ,
		BlueXYZ:  blueXYZ,
		WhiteXYZ: whiteXYZ,
		CRT:      p.CRT,
		Spiral:   p.Spiral,
		Log:      p.Log,
	}

	whiteJz := g.LinearRGBToJzCzhz(mathutil.Vec3{X: 1, Y: 1, Z: 1})
	g.MaxLuma = whiteJz.X

	maxChroma := 0.0
	for _, rgb := range [3]mathutil.Vec3{{X: 1}, {Y: 1}, {Z: 1}} {
		jch := g.LinearRGBToJzCzhz(rgb)
		if jch.Y > maxChroma {
			maxChroma = jch.Y
		}
	}
	g.MaxChroma = maxChroma * 1.1

	if p.Log != nil {
		p.Log.Info("gamut: sampling boundaries", "gamut", p.Name, "hueSteps", HueSteps)
	}

	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	var eg errgroup.Group
	eg.SetLimit(workers)
	for h := 0; h < HueSteps; h++ {
		h := h
		eg.Go(func() error {
			slice, err := g.processSlice(h)
			if err != nil {
				return err
			}
			g.Slices[h] = slice
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, errors.Wrapf(err, "gamut: sampling %s", p.Name)
	}

	g.initializePolarPrimaries()

	return g, nil
}

// isInBounds converts a JzCzhz color to linear RGB and reports whether
// every channel lies within [0,1], plus how far outside it falls when not.
// With a CRT attached, the bounds are tested against the gamma-space signal
// that would drive the emulated CRT to that output (uncrush suppressed, so
// the bottom of the pedestal range stays reachable). Inverse PQ NaN means
// the query was far outside anything realizable.
func (g *GBD) isInBounds(jch mathutil.Vec3) (inBounds bool, errorSize float64) {
	rgb := g.JzCzhzToLinearRGB(jch)
	if math.IsNaN(rgb.X) || math.IsNaN(rgb.Y) || math.IsNaN(rgb.Z) {
		return false, 10000.0
	}
	if g.CRT != nil {
		rgb = g.CRT.LinearToGamma(rgb, false)
	}
	size := 0.0
	for _, c := range [3]float64{rgb.X, rgb.Y, rgb.Z} {
		if c < 0 {
			size += -c
		} else if c > 1 {
			size += c - 1
		}
	}
	return size == 0, size
}

// processSlice samples hue slice h's polyline: a coarse luma/chroma grid
// walk to find roughly where the gamut boundary sits, fine sampling across
// every in/out transition on each luma row (a concave boundary can cross a
// row more than once), a scan for the cusp (the highest-chroma point on the
// boundary), and the ordering/dedup pass that turns the samples into a
// black-to-cusp-to-white polyline.
func (g *GBD) processSlice(h int) (hueSlice, error) {
	hue := float64(h) * HuePerStep
	lumaStep := g.MaxLuma / LumaSteps
	chromaStep := g.MaxChroma / ChromaSteps
	fineChromaStep := chromaStep / FineChromaSteps
	fineLumaStep := lumaStep / FineLumaSteps

	// Coarse grid. Row 0 and the top row hold only the black/white points,
	// and the chroma-zero column is in bounds by definition, so all three
	// are skipped.
	var grid [LumaSteps][ChromaSteps]bool
	for row := 0; row < LumaSteps; row++ {
		grid[row][0] = true
	}
	for row := 1; row < LumaSteps-1; row++ {
		rowLuma := float64(row) * lumaStep
		for col := 1; col < ChromaSteps; col++ {
			in, _ := g.isInBounds(mathutil.Vec3{X: rowLuma, Y: float64(col) * chromaStep, Z: hue})
			grid[row][col] = in
		}
	}

	// Fine sampling across every in/out flip between horizontal neighbors.
	// (The "in after out" direction happens when the boundary is concave.)
	var points []boundaryPoint
	for row := 1; row < LumaSteps-1; row++ {
		rowLuma := float64(row) * lumaStep
		for col := 0; col < ChromaSteps-1; col++ {
			if grid[row][col] == grid[row][col+1] {
				continue
			}
			waitingForOut := grid[row][col]
			foundIt := false
			for fine := 1; fine < FineChromaSteps; fine++ {
				fineX := float64(col)*chromaStep + float64(fine)*fineChromaStep
				in, _ := g.isInBounds(mathutil.Vec3{X: rowLuma, Y: fineX, Z: hue})
				if in != waitingForOut {
					continue
				}
				// Crossed over; assume the boundary is halfway between samples.
				points = append(points, boundaryPoint{Chroma: fineX - 0.5*fineChromaStep, Luma: rowLuma})
				foundIt = true
				break
			}
			if !foundIt {
				points = append(points, boundaryPoint{Chroma: float64(col+1)*chromaStep - 0.5*fineChromaStep, Luma: rowLuma})
			}
		}
	}

	// Cusp scan: start from the highest chroma sampled so far and walk luma
	// at fine resolution one coarse step either way, extending chroma
	// outward at each luma until it leaves the gamut.
	biggestChroma := 0.0
	lumaForBiggest := 0.0
	for _, pt := range points {
		if pt.Chroma > biggestChroma {
			biggestChroma = pt.Chroma
			lumaForBiggest = pt.Luma
		}
	}
	// Take a full fine step back off in case the halfway estimate overshot.
	biggestChroma -= fineChromaStep
	cuspChroma := biggestChroma
	cuspLuma := lumaForBiggest
	for scanLuma := lumaForBiggest - lumaStep; scanLuma <= lumaForBiggest+lumaStep; scanLuma += fineLumaStep {
		if in, _ := g.isInBounds(mathutil.Vec3{X: scanLuma, Y: biggestChroma, Z: hue}); !in {
			continue
		}
		for scanChroma := cuspChroma; scanChroma <= g.MaxChroma; scanChroma += fineChromaStep {
			in, _ := g.isInBounds(mathutil.Vec3{X: scanLuma, Y: scanChroma, Z: hue})
			if in {
				continue
			}
			if boundary := scanChroma - 0.5*fineChromaStep; boundary > cuspChroma {
				cuspChroma = boundary
				cuspLuma = scanLuma
			}
			break
		}
	}
	points = append(points, boundaryPoint{Chroma: cuspChroma, Luma: cuspLuma, IsCusp: true})

	// Insert the known black and white anchors and order the polyline by
	// clockwise angle around the slice's neutral gray reference, white
	// first; then flip the whole thing so black leads.
	points = append(points, boundaryPoint{Chroma: 0, Luma: g.MaxLuma})
	reversePoints(points)
	points = append(points, boundaryPoint{Chroma: 0, Luma: 0})

	gray := mathutil.Vec2{X: 0, Y: g.MaxLuma * 0.5}
	grayToWhite := mathutil.Vec2{X: 0, Y: g.MaxLuma}.Sub(gray).Normalized()
	for i := range points {
		toPoint := mathutil.Vec2{X: points[i].Chroma, Y: points[i].Luma}.Sub(gray).Normalized()
		points[i].Angle = mathutil.ClockwiseAngle(grayToWhite, toPoint)
	}
	sortByAngle(points)
	points = dedupAdjacent(points)
	reversePoints(points)

	slice := hueSlice{
		Points:     points,
		CuspChroma: cuspChroma,
		CuspLuma:   cuspLuma,
	}
	if err := g.buildFakePoints(&slice, lumaStep); err != nil {
		return hueSlice{}, errors.Wrapf(err, "slice %d", h)
	}
	return slice, nil
}

// buildFakePoints derives the two extrapolation points the VP family maps
// toward. FakeLower extends the line from the first boundary node at least
// a luma step above the cusp, through the cusp, out to a vertical at three
// times the max chroma (far enough to catch everything without the
// numerical trouble a zero-luma intersection can cause). FakeUpper extends
// the line from black through the cusp up to 1.5x the max luma.
func (g *GBD) buildFakePoints(slice *hueSlice, lumaStep float64) error {
	pts := slice.Points
	cuspIdx := -1
	for i, pt := range pts {
		if pt.IsCusp {
			cuspIdx = i
			break
		}
	}
	if cuspIdx < 0 {
		return errors.New("gamut sampling missed the cusp")
	}
	cusp := mathutil.Vec2{X: pts[cuspIdx].Chroma, Y: pts[cuspIdx].Luma}

	found := false
	for j := cuspIdx + 1; j < len(pts); j++ {
		if pts[j].Luma-cusp.Y < lumaStep {
			// Basically the same point twice; the slope would be garbage.
			continue
		}
		above := mathutil.Vec2{X: pts[j].Chroma, Y: pts[j].Luma}
		pt, ok := mathutil.LineIntersection2D(above, cusp,
			mathutil.Vec2{X: 3 * g.MaxChroma, Y: 0}, mathutil.Vec2{X: 3 * g.MaxChroma, Y: g.MaxLuma})
		if ok {
			slice.FakeLower = pt
			found = true
			break
		}
	}
	if !found {
		return errors.New("no intercept for the lower extrapolation point")
	}

	pt, ok := mathutil.LineIntersection2D(mathutil.Vec2{X: 0, Y: 0}, cusp,
		mathutil.Vec2{X: 0, Y: 1.5 * g.MaxLuma}, mathutil.Vec2{X: 1, Y: 1.5 * g.MaxLuma})
	if !ok {
		return errors.New("no intercept for the upper extrapolation point")
	}
	slice.FakeUpper = pt
	return nil
}

func reversePoints(points []boundaryPoint) {
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
}

func sortByAngle(points []boundaryPoint) {
	// Insertion sort: the point count per slice is small (tens of points)
	// and this keeps the ordering stable for the dedup pass below.
	for i := 1; i < len(points); i++ {
		j := i
		for j > 0 && points[j-1].Angle > points[j].Angle {
			points[j-1], points[j] = points[j], points[j-1]
			j--
		}
	}
}

func dedupAdjacent(points []boundaryPoint) []boundaryPoint {
	if len(points) == 0 {
		return points
	}
	out := points[:1]
	for _, p := range points[1:] {
		last := &out[len(out)-1]
		if math.Abs(last.Chroma-p.Chroma) < mathutil.Epsilon && math.Abs(last.Luma-p.Luma) < mathutil.Epsilon {
			if p.IsCusp {
				last.IsCusp = true
			}
			continue
		}
		out = append(out, p)
	}
	return out
}

// initializePolarPrimaries samples this gamut's own primaries/secondaries
// in polar JzCzhz. The "Adj" variants substitute the attached CRT's actual
// emitted light when one is attached; Spiral CARISMA anchors on those, not
// the ideal points.
func (g *GBD) initializePolarPrimaries() {
	g.PolarRed = g.LinearRGBToJzCzhz(mathutil.Vec3{X: 1})
	g.PolarGreen = g.LinearRGBToJzCzhz(mathutil.Vec3{Y: 1})
	g.PolarBlue = g.LinearRGBToJzCzhz(mathutil.Vec3{Z: 1})
	g.PolarCyan = g.LinearRGBToJzCzhz(mathutil.Vec3{Y: 1, Z: 1})
	g.PolarMagenta = g.LinearRGBToJzCzhz(mathutil.Vec3{X: 1, Z: 1})
	g.PolarYellow = g.LinearRGBToJzCzhz(mathutil.Vec3{X: 1, Y: 1})

	if g.CRT == nil {
		g.AdjPolarRed, g.AdjPolarGreen, g.AdjPolarBlue = g.PolarRed, g.PolarGreen, g.PolarBlue
		g.AdjPolarCyan, g.AdjPolarMagenta, g.AdjPolarYellow = g.PolarCyan, g.PolarMagenta, g.PolarYellow
		return
	}
	toJch := func(rgb mathutil.Vec3) mathutil.Vec3 {
		return g.LinearRGBToJzCzhz(g.CRT.GammaToLinear(rgb))
	}
	g.AdjPolarRed = toJch(mathutil.Vec3{X: 1})
	g.AdjPolarGreen = toJch(mathutil.Vec3{Y: 1})
	g.AdjPolarBlue = toJch(mathutil.Vec3{Z: 1})
	g.AdjPolarCyan = toJch(mathutil.Vec3{Y: 1, Z: 1})
	g.AdjPolarMagenta = toJch(mathutil.Vec3{X: 1, Z: 1})
	g.AdjPolarYellow = toJch(mathutil.Vec3{X: 1, Y: 1})
}
