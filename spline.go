// seehuhn.de/go/dxf - a library for reading and writing DXF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package dxf

// Spline flags (group code 70).
const (
	SplineClosed   = 1
	SplinePeriodic = 2
	SplineRational = 4
	SplinePlanar   = 8
	SplineLinear   = 16
)

// Spline is the SPLINE entity, a NURBS curve.
type Spline struct {
	graphicsData
	Flags  int
	Degree int

	Knots         []float64
	ControlPoints []Point
	FitPoints     []Point
	// Weights holds one weight per control point for rational splines,
	// or nil.
	Weights []float64

	StartTangent Point
	EndTangent   Point

	KnotTolerance    float64
	ControlTolerance float64
	FitTolerance     float64
}

// NewSpline creates an open spline of the given degree.
func NewSpline(degree int, controlPoints []Point, knots []float64) *Spline {
	return &Spline{
		graphicsData:     defaultGraphics(),
		Degree:           degree,
		ControlPoints:    controlPoints,
		Knots:            knots,
		KnotTolerance:    1e-10,
		ControlTolerance: 1e-10,
		FitTolerance:     1e-10,
	}
}

// DXFType implements the [Entity] interface.
func (e *Spline) DXFType() string { return "SPLINE" }

func (e *Spline) minVersion() Version { return R2000 }

func (e *Spline) load(x *xtags) error {
	e.KnotTolerance = 1e-10
	e.ControlTolerance = 1e-10
	e.FitTolerance = 1e-10
	for _, t := range x.flat() {
		if e.graphicsData.readTag(t) {
			continue
		}
		switch t.Code {
		case 70:
			e.Flags = t.Int()
		case 71:
			e.Degree = t.Int()
		case 40:
			e.Knots = append(e.Knots, t.Float())
		case 10:
			e.ControlPoints = append(e.ControlPoints, t.Point())
		case 11:
			e.FitPoints = append(e.FitPoints, t.Point())
		case 41:
			e.Weights = append(e.Weights, t.Float())
		case 12:
			e.StartTangent = t.Point()
		case 13:
			e.EndTangent = t.Point()
		case 42:
			e.KnotTolerance = t.Float()
		case 43:
			e.ControlTolerance = t.Float()
		case 44:
			e.FitTolerance = t.Float()
		}
	}
	return nil
}

func (e *Spline) export(tw *tagWriter) {
	e.graphicsData.export(tw)
	tw.subclass("AcDbSpline")
	tw.intTag(70, e.Flags)
	tw.intTag(71, e.Degree)
	tw.intTag(72, len(e.Knots))
	tw.intTag(73, len(e.ControlPoints))
	tw.intTag(74, len(e.FitPoints))
	if e.KnotTolerance != 1e-10 {
		tw.real(42, e.KnotTolerance)
	}
	if e.ControlTolerance != 1e-10 {
		tw.real(43, e.ControlTolerance)
	}
	if e.FitTolerance != 1e-10 {
		tw.real(44, e.FitTolerance)
	}
	zero := Point{}
	if e.StartTangent != zero {
		tw.point(12, e.StartTangent)
	}
	if e.EndTangent != zero {
		tw.point(13, e.EndTangent)
	}
	for _, k := range e.Knots {
		tw.real(40, k)
	}
	for i, p := range e.ControlPoints {
		tw.point(10, p)
		if i < len(e.Weights) {
			tw.real(41, e.Weights[i])
		}
	}
	for _, p := range e.FitPoints {
		tw.point(11, p)
	}
}
