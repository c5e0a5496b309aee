package components

// Shape is the display shape of a body. It tracks guess status only:
//
//	Circle   - nobody guessed this body
//	Triangle - the operator guessed this body's species
//	Square   - the predictor guessed this body's species
//	Rhombus  - both guessed it
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeTriangle
	ShapeSquare
	ShapeRhombus
)

// AllShapes lists every shape in declaration order.
var AllShapes = [...]Shape{ShapeCircle, ShapeTriangle, ShapeSquare, ShapeRhombus}

// String returns the display name for a Shape.
func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeTriangle:
		return "triangle"
	case ShapeSquare:
		return "square"
	case ShapeRhombus:
		return "rhombus"
	}
	return "unknown"
}

// OperatorGuessed reports whether the operator's guess is on this shape.
func (s Shape) OperatorGuessed() bool {
	return s == ShapeTriangle || s == ShapeRhombus
}

// PredictorGuessed reports whether the predictor's guess is on this shape.
func (s Shape) PredictorGuessed() bool {
	return s == ShapeSquare || s == ShapeRhombus
}

// Toggled returns the shape after the operator clicks it:
// circle and triangle swap, square and rhombus swap.
func (s Shape) Toggled() Shape {
	switch s {
	case ShapeCircle:
		return ShapeTriangle
	case ShapeTriangle:
		return ShapeCircle
	case ShapeSquare:
		return ShapeRhombus
	case ShapeRhombus:
		return ShapeSquare
	}
	return s
}

// WithoutOperatorGuess drops the operator's guess and keeps the predictor's.
func (s Shape) WithoutOperatorGuess() Shape {
	switch s {
	case ShapeTriangle:
		return ShapeCircle
	case ShapeRhombus:
		return ShapeSquare
	}
	return s
}

// WithPredictorGuess adds the predictor's guess and keeps the operator's.
func (s Shape) WithPredictorGuess() Shape {
	switch s {
	case ShapeCircle:
		return ShapeSquare
	case ShapeTriangle:
		return ShapeRhombus
	}
	return s
}
