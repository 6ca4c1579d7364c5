// Package mood implements the six-axis mood vector and the mapping from
// external context to a current mood.
package mood

import (
	"fmt"
	"math"
)

// Axis names a single mood dimension
type Axis int

const (
	Happy Axis = iota
	Melancholic
	Hopeful
	Nostalgic
	Mysterious
	Relaxing
)

// NumAxes is the fixed dimension of every Vector
const NumAxes = 6

var axisNames = [NumAxes]string{"happy", "melancholic", "hopeful", "nostalgic", "mysterious", "relaxing"}

// Axes lists every axis in canonical order
var Axes = [NumAxes]Axis{Happy, Melancholic, Hopeful, Nostalgic, Mysterious, Relaxing}

// String returns the lowercase axis name used in catalogs and logs
func (a Axis) String() string {
	if a < 0 || int(a) >= NumAxes {
		return fmt.Sprintf("axis(%d)", int(a))
	}
	return axisNames[a]
}

// Vector holds one value per mood axis, indexed by Axis
type Vector [NumAxes]float64

// Sum returns the component-wise sum of v and o
func (v Vector) Sum(o Vector) Vector {
	var out Vector
	for i := range v {
		out[i] = v[i] + o[i]
	}
	return out
}

// Total returns the sum of all components
func (v Vector) Total() float64 {
	var total float64
	for _, c := range v {
		total += c
	}
	return total
}

// Normalize scales v so its components sum to 1.
// A vector whose components sum to exactly zero is returned unchanged.
func (v Vector) Normalize() Vector {
	total := v.Total()
	if total == 0 {
		return v
	}
	var out Vector
	for i := range v {
		out[i] = v[i] / total
	}
	return out
}

// Average divides every component by count. A non-positive count returns v unchanged.
func (v Vector) Average(count int) Vector {
	if count <= 0 {
		return v
	}
	var out Vector
	for i := range v {
		out[i] = v[i] / float64(count)
	}
	return out
}

// Distance returns the Euclidean distance between v and o over all axes
func (v Vector) Distance(o Vector) float64 {
	var sum float64
	for i := range v {
		d := v[i] - o[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Dominant returns the axis with the largest component, preferring the
// earliest axis on ties
func (v Vector) Dominant() Axis {
	best := Happy
	for _, a := range Axes {
		if v[a] > v[best] {
			best = a
		}
	}
	return best
}

// Map returns the vector keyed by axis name
func (v Vector) Map() map[string]float64 {
	out := make(map[string]float64, NumAxes)
	for _, a := range Axes {
		out[a.String()] = v[a]
	}
	return out
}

// Sigmoid is the logistic function 1 / (1 + e^-x)
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
