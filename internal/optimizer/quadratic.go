package optimizer

import "math"

// SolveQuadratic returns the real roots of ax² + bx + c = 0. A linear
// equation (a == 0) yields its single root in both positions; a constant
// equation or a negative discriminant yields (0, 0). Provided as a sizing
// primitive; the opportunity pipeline uses the discretized scan for
// execution decisions.
func SolveQuadratic(a, b, c float64) (x1, x2 float64) {
	if a == 0 {
		if b == 0 {
			return 0, 0
		}
		root := -c / b
		return root, root
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, 0
	}

	sqrtD := math.Sqrt(discriminant)
	x1 = (-b + sqrtD) / (2 * a)
	x2 = (-b - sqrtD) / (2 * a)
	return x1, x2
}
