package oneline

// Affine describes an affine transform via coefficients.
//
// If the coefficients are (a, b, c, d, e, f), then the resulting
// transformation represents this augmented matrix:
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// The idea is that (A * B) * v == A * (B * v).
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Scale creates an affine transform representing non-uniform scaling with
// different scale values for x and y
func Scale(x, y float64) Affine {
	return Affine{x, 0, 0, y, 0, 0}
}

// Translate creates an affine transform representing translation.
func Translate(v Vec2) Affine {
	return Affine{1, 0, 0, 1, v.X, v.Y}
}

// Mul composes two transforms; o is applied first.
func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.N0*o.N0 + aff.N2*o.N1,
		aff.N1*o.N0 + aff.N3*o.N1,
		aff.N0*o.N2 + aff.N2*o.N3,
		aff.N1*o.N2 + aff.N3*o.N3,
		aff.N0*o.N4 + aff.N2*o.N5 + aff.N4,
		aff.N1*o.N4 + aff.N3*o.N5 + aff.N5,
	}
}

// FitRect returns the uniform scale-and-translate transform that maps src
// into dst, preserving aspect ratio and centring the result. A src of zero
// size is only centred.
func FitRect(src, dst Rect) Affine {
	w, h := src.Width(), src.Height()
	if !(w > 0) && !(h > 0) {
		return Translate(dst.Center().Sub(src.Center()))
	}
	s := min(dst.Width()/w, dst.Height()/h)
	switch {
	case !(w > 0):
		s = dst.Height() / h
	case !(h > 0):
		s = dst.Width() / w
	}
	c := src.Center()
	return Translate(Vec2(dst.Center())).Mul(Scale(s, s)).Mul(Translate(Vec(-c.X, -c.Y)))
}
