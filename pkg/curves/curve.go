//
// Copyright Coinbase, Inc. All Rights Reserved.
//
// SPDX-License-Identifier: Apache-2.0
//

// Package curves provides a curve-agnostic Scalar/Point abstraction over a
// prime-order elliptic-curve group, plus concrete backends (ristretto255,
// secp256k1, bls12-381 G1) registered by name.
package curves

import (
	"fmt"
	"io"
	"math/big"
	"sync"
)

// Scalar is an element of the prime-order scalar field of a Curve.
// Implementations MUST treat every method as operating modulo the curve's
// order; there is no overflow, only wraparound.
type Scalar interface {
	Random(reader io.Reader) Scalar
	Hash(input []byte) Scalar
	Zero() Scalar
	One() Scalar
	New(value int) Scalar
	IsZero() bool
	IsOne() bool
	IsOdd() bool
	IsEven() bool
	Cmp(rhs Scalar) int
	Square() Scalar
	Double() Scalar
	Invert() (Scalar, error)
	Sqrt() (Scalar, error)
	Cube() Scalar
	Add(rhs Scalar) Scalar
	Sub(rhs Scalar) Scalar
	Mul(rhs Scalar) Scalar
	MulAdd(y, z Scalar) Scalar
	Div(rhs Scalar) Scalar
	Neg() Scalar
	Pow(exp uint64) Scalar
	Clone() Scalar
	Point() Point
	Bytes() []byte
	SetBytes(bytes []byte) (Scalar, error)
	SetBigInt(v *big.Int) (Scalar, error)
	BigInt() *big.Int
	CurveName() string
	// Zeroize overwrites the scalar's internal representation with zero
	// bytes in place. It does not affect any other Scalar produced by
	// Clone or by an arithmetic method, each of which holds its own
	// independent backing storage.
	Zeroize()
}

// Point is an element of the prime-order subgroup of a Curve's underlying
// elliptic-curve group.
type Point interface {
	Random(reader io.Reader) Point
	Hash(input []byte) Point
	Identity() Point
	Generator() Point
	IsIdentity() bool
	IsNegative() bool
	IsOnCurve() bool
	Double() Point
	Scalar() Scalar
	Neg() Point
	Add(rhs Point) Point
	Sub(rhs Point) Point
	Mul(rhs Scalar) Point
	Equal(rhs Point) bool
	Set(x, y *big.Int) (Point, error)
	ToAffineCompressed() []byte
	ToAffineUncompressed() []byte
	FromAffineCompressed(bytes []byte) (Point, error)
	FromAffineUncompressed(bytes []byte) (Point, error)
	CurveName() string
	X() *big.Int
	Y() *big.Int
}

// Curve bundles prototype Scalar/Point values and curve-level operations.
// The Scalar/Point fields are zero-value prototypes used only to dispatch
// to the correct concrete type (mirrors the teacher's curves.Curve design);
// never mutate them directly.
type Curve struct {
	Scalar Scalar
	Point  Point
	Name   string

	// secondGenerator is H, the process-wide independent generator used by
	// Pedersen commitments. Populated lazily via hash-to-curve; see
	// hash_to_curve.go.
	secondGenerator     Point
	secondGeneratorOnce *sync.Once
}

// ScalarBaseMult computes sc*G, the curve's standard generator.
func (c *Curve) ScalarBaseMult(sc Scalar) Point {
	return c.Point.Generator().Mul(sc)
}

// H returns the curve's second Pedersen generator, computed once via
// hash-to-curve from a fixed domain-separation string and cached for the
// lifetime of the process.
func (c *Curve) H() Point {
	c.secondGeneratorOnce.Do(func() {
		c.secondGenerator = deriveSecondGenerator(c)
	})
	return c.secondGenerator
}

var curveRegistry = map[string]*Curve{}
var registryMu sync.Mutex

func registerCurve(c *Curve) {
	registryMu.Lock()
	defer registryMu.Unlock()
	c.secondGeneratorOnce = new(sync.Once)
	curveRegistry[c.Name] = c
}

// GetCurveByName looks up a previously registered Curve by its canonical
// name ("ristretto255", "k256", "bls12-381").
func GetCurveByName(name string) *Curve {
	registryMu.Lock()
	defer registryMu.Unlock()
	if c, ok := curveRegistry[name]; ok {
		return c
	}
	return nil
}

// RegisteredCurveNames returns the canonical names of every registered
// Curve, primarily for table-driven tests that want to run against all
// backends.
func RegisteredCurveNames() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	names := make([]string, 0, len(curveRegistry))
	for name := range curveRegistry {
		names = append(names, name)
	}
	return names
}

func errInvalidPoint(curve, reason string) error {
	return fmt.Errorf("curves: invalid %s point: %s", curve, reason)
}
