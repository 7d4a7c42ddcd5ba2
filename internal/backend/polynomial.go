package backend

import (
	"fmt"
	"io"
)

// polynomial is a polynomial over the scalar field, used to share the
// re-encryption key among fragments.
type polynomial struct {
	coefficients []*Scalar
}

// newRandomPolynomial creates a polynomial of the given degree with a fixed
// constant term and uniformly random higher coefficients.
func newRandomPolynomial(rng io.Reader, degree int, constantTerm *Scalar) (*polynomial, error) {
	if degree < 0 {
		return nil, fmt.Errorf("degree must be non-negative")
	}

	coefficients := make([]*Scalar, degree+1)
	coefficients[0] = constantTerm

	for i := 1; i <= degree; i++ {
		coeff, err := RandomNonZeroScalar(rng)
		if err != nil {
			return nil, fmt.Errorf("failed to generate coefficient %d: %w", i, err)
		}
		coefficients[i] = coeff
	}

	return &polynomial{coefficients: coefficients}, nil
}

// evaluate evaluates the polynomial at x using Horner's method. The result
// never aliases a coefficient, so callers may zeroize the polynomial while
// keeping evaluated shares.
func (p *polynomial) evaluate(x *Scalar) *Scalar {
	result := new(Scalar)
	result.inner.Set(&p.coefficients[len(p.coefficients)-1].inner)
	for i := len(p.coefficients) - 2; i >= 0; i-- {
		result = result.Mul(x).Add(p.coefficients[i])
	}
	return result
}

// zeroize clears the polynomial coefficients.
func (p *polynomial) zeroize() {
	for i, coeff := range p.coefficients {
		if coeff != nil {
			coeff.Zeroize()
		}
		p.coefficients[i] = nil
	}
	p.coefficients = nil
}

// lagrangeCoefficients computes the Lagrange basis coefficients at x = 0 for
// the given pairwise-distinct interpolation points. A zero denominator
// (repeated points) is reported as ErrScalarZero.
func lagrangeCoefficients(points []*Scalar) ([]*Scalar, error) {
	coefficients := make([]*Scalar, len(points))

	for i, xi := range points {
		numerator := newScalarOne()
		denominator := newScalarOne()

		for j, xj := range points {
			if i == j {
				continue
			}
			// numerator *= (0 - x_j) = -x_j
			numerator = numerator.Mul(xj.Negate())
			// denominator *= (x_i - x_j)
			denominator = denominator.Mul(xi.Sub(xj))
		}

		denomInv, err := denominator.Invert()
		if err != nil {
			return nil, err
		}
		coefficients[i] = numerator.Mul(denomInv)
	}

	return coefficients, nil
}

func newScalarOne() *Scalar {
	s := new(Scalar)
	s.inner.SetInt(1)
	return s
}
