package backend

import (
	"crypto/rand"
	"testing"
)

func TestPolynomialEvaluate(t *testing.T) {
	constant, err := RandomNonZeroScalar(rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate scalar: %v", err)
	}

	poly, err := newRandomPolynomial(rand.Reader, 3, constant)
	if err != nil {
		t.Fatalf("failed to create polynomial: %v", err)
	}

	// f(0) is the constant term.
	if !poly.evaluate(new(Scalar)).Equal(constant) {
		t.Error("evaluation at zero does not yield the constant term")
	}

	// Horner evaluation must match the naive sum a0 + a1*x + a2*x^2 + ...
	x, err := RandomNonZeroScalar(rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate scalar: %v", err)
	}

	naive := new(Scalar)
	power := newScalarOne()
	for _, coeff := range poly.coefficients {
		naive = naive.Add(coeff.Mul(power))
		power = power.Mul(x)
	}
	if !poly.evaluate(x).Equal(naive) {
		t.Error("Horner evaluation disagrees with naive evaluation")
	}
}

func TestPolynomialEvaluateSurvivesZeroize(t *testing.T) {
	constant, err := RandomNonZeroScalar(rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate scalar: %v", err)
	}
	expected, err := ScalarFromBytes(constant.Bytes())
	if err != nil {
		t.Fatalf("failed to copy scalar: %v", err)
	}

	// A degree-0 polynomial evaluates to its constant term everywhere;
	// the share must stay intact after the coefficients are wiped.
	poly, err := newRandomPolynomial(rand.Reader, 0, constant)
	if err != nil {
		t.Fatalf("failed to create polynomial: %v", err)
	}
	share := poly.evaluate(newScalarOne())
	poly.zeroize()

	if share.IsZero() || !share.Equal(expected) {
		t.Error("zeroizing the polynomial clobbered an evaluated share")
	}
}

func TestLagrangeReconstruction(t *testing.T) {
	secret, err := RandomNonZeroScalar(rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate secret: %v", err)
	}

	// Degree 2 polynomial: any 3 shares determine f(0).
	poly, err := newRandomPolynomial(rand.Reader, 2, secret)
	if err != nil {
		t.Fatalf("failed to create polynomial: %v", err)
	}

	points := make([]*Scalar, 3)
	values := make([]*Scalar, 3)
	for i := range points {
		x, err := RandomNonZeroScalar(rand.Reader)
		if err != nil {
			t.Fatalf("failed to generate point: %v", err)
		}
		points[i] = x
		values[i] = poly.evaluate(x)
	}

	lambdas, err := lagrangeCoefficients(points)
	if err != nil {
		t.Fatalf("failed to compute coefficients: %v", err)
	}

	reconstructed := new(Scalar)
	for i := range lambdas {
		reconstructed = reconstructed.Add(values[i].Mul(lambdas[i]))
	}
	if !reconstructed.Equal(secret) {
		t.Error("Lagrange interpolation did not recover the constant term")
	}
}

func TestLagrangeRepeatedPointsFail(t *testing.T) {
	x, err := RandomNonZeroScalar(rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate point: %v", err)
	}

	duplicate, err := ScalarFromBytes(x.Bytes())
	if err != nil {
		t.Fatalf("failed to copy scalar: %v", err)
	}

	if _, err := lagrangeCoefficients([]*Scalar{x, duplicate}); err == nil {
		t.Error("expected an error for repeated interpolation points")
	}
}
