package curves

import (
	"crypto/sha512"
	"fmt"
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

func bls12381ScalarField() field { return newField(fr.Modulus()) }

// ScalarBls12381G1 is a scalar in the BLS12-381 G1 scalar field, the
// pairing-friendly backend (§4: curves are pluggable; this one lets a
// deployment later layer threshold BLS signatures on top of the same share
// material without re-running sharing).
type ScalarBls12381G1 struct {
	field
}

func NewScalarBls12381G1() *ScalarBls12381G1 {
	return &ScalarBls12381G1{bls12381ScalarField()}
}

func (s *ScalarBls12381G1) wrap(f field) *ScalarBls12381G1 { return &ScalarBls12381G1{f} }

func (s *ScalarBls12381G1) Random(reader io.Reader) Scalar {
	return s.wrap(s.setBigInt(s.randBigInt(reader, s.modulus)))
}

func (s *ScalarBls12381G1) Hash(input []byte) Scalar {
	h := sha512.Sum512(append([]byte("TSS-VAULT-SCALAR-HASH-bls12381g1-v1:"), input...))
	return s.wrap(s.hashWide(h[:]))
}

func (s *ScalarBls12381G1) Zero() Scalar         { return s.wrap(s.setInt(0)) }
func (s *ScalarBls12381G1) One() Scalar          { return s.wrap(s.setInt(1)) }
func (s *ScalarBls12381G1) New(value int) Scalar { return s.wrap(s.setInt(value)) }
func (s *ScalarBls12381G1) IsZero() bool         { return s.field.isZero() }
func (s *ScalarBls12381G1) IsOne() bool          { return s.field.isOne() }
func (s *ScalarBls12381G1) IsOdd() bool          { return s.field.isOdd() }
func (s *ScalarBls12381G1) IsEven() bool         { return s.field.isEven() }

func (s *ScalarBls12381G1) Cmp(rhs Scalar) int {
	r, ok := rhs.(*ScalarBls12381G1)
	if !ok || r == nil {
		return -2
	}
	return s.field.cmp(r.field)
}

func (s *ScalarBls12381G1) Square() Scalar { return s.wrap(s.field.square()) }
func (s *ScalarBls12381G1) Double() Scalar { return s.wrap(s.field.double()) }
func (s *ScalarBls12381G1) Cube() Scalar   { return s.wrap(s.field.cube()) }

func (s *ScalarBls12381G1) Invert() (Scalar, error) {
	f, err := s.field.invert()
	if err != nil {
		return nil, err
	}
	return s.wrap(f), nil
}

func (s *ScalarBls12381G1) Sqrt() (Scalar, error) {
	f, err := s.field.sqrt()
	if err != nil {
		return nil, err
	}
	return s.wrap(f), nil
}

func (s *ScalarBls12381G1) Add(rhs Scalar) Scalar {
	r, ok := rhs.(*ScalarBls12381G1)
	if !ok || r == nil {
		return nil
	}
	return s.wrap(s.field.add(r.field))
}

func (s *ScalarBls12381G1) Sub(rhs Scalar) Scalar {
	r, ok := rhs.(*ScalarBls12381G1)
	if !ok || r == nil {
		return nil
	}
	return s.wrap(s.field.sub(r.field))
}

func (s *ScalarBls12381G1) Mul(rhs Scalar) Scalar {
	r, ok := rhs.(*ScalarBls12381G1)
	if !ok || r == nil {
		return nil
	}
	return s.wrap(s.field.mul(r.field))
}

func (s *ScalarBls12381G1) MulAdd(y, z Scalar) Scalar {
	m := s.Mul(y)
	if m == nil {
		return nil
	}
	return m.Add(z)
}

func (s *ScalarBls12381G1) Div(rhs Scalar) Scalar {
	r, ok := rhs.(*ScalarBls12381G1)
	if !ok || r == nil {
		return nil
	}
	inv, err := r.field.invert()
	if err != nil {
		return nil
	}
	return s.wrap(s.field.mul(inv))
}

func (s *ScalarBls12381G1) Neg() Scalar           { return s.wrap(s.field.neg()) }
func (s *ScalarBls12381G1) Pow(exp uint64) Scalar { return s.wrap(s.field.pow(exp)) }
func (s *ScalarBls12381G1) Clone() Scalar         { return s.wrap(s.field.clone()) }
func (s *ScalarBls12381G1) Point() Point          { return identityBls12381G1() }
func (s *ScalarBls12381G1) Bytes() []byte         { return s.field.bytesLE() }

func (s *ScalarBls12381G1) SetBytes(bytes []byte) (Scalar, error) {
	f, err := s.field.setCanonicalBytesLE(bytes)
	if err != nil {
		return nil, err
	}
	return s.wrap(f), nil
}

func (s *ScalarBls12381G1) SetBigInt(v *big.Int) (Scalar, error) {
	if v == nil {
		return nil, fmt.Errorf("curves: nil big.Int")
	}
	return s.wrap(s.field.setBigInt(v)), nil
}

func (s *ScalarBls12381G1) BigInt() *big.Int  { return new(big.Int).Set(s.field.value) }
func (s *ScalarBls12381G1) CurveName() string { return "bls12-381" }
func (s *ScalarBls12381G1) Zeroize()          { s.field.zeroize() }

// PointBls12381G1 wraps a gnark-crypto BLS12-381 G1 Jacobian point.
type PointBls12381G1 struct {
	value bls12381.G1Jac
}

func identityBls12381G1() *PointBls12381G1 {
	p := new(PointBls12381G1)
	p.value.X.SetOne()
	p.value.Y.SetOne()
	p.value.Z.SetZero()
	return p
}

func (p *PointBls12381G1) wrap(v bls12381.G1Jac) *PointBls12381G1 {
	return &PointBls12381G1{value: v}
}

func (p *PointBls12381G1) affine() bls12381.G1Affine {
	var a bls12381.G1Affine
	a.FromJacobian(&p.value)
	return a
}

func (p *PointBls12381G1) Random(reader io.Reader) Point {
	s := NewScalarBls12381G1().Random(reader).(*ScalarBls12381G1)
	return p.Generator().Mul(s)
}

func (p *PointBls12381G1) Hash(input []byte) Point {
	a, err := bls12381.HashToG1(input, []byte("TSS-VAULT-POINT-HASH-bls12381g1-v1"))
	if err != nil {
		panic(fmt.Sprintf("curves: bls12-381 hash-to-curve failed: %v", err))
	}
	var found bls12381.G1Jac
	found.FromAffine(&a)
	return p.wrap(found)
}

func (p *PointBls12381G1) Identity() Point { return identityBls12381G1() }

func (p *PointBls12381G1) Generator() Point {
	_, _, g1Aff, _ := bls12381.Generators()
	var v bls12381.G1Jac
	v.FromAffine(&g1Aff)
	return p.wrap(v)
}

func (p *PointBls12381G1) IsIdentity() bool {
	return p.value.Z.IsZero()
}

// IsNegative reports the parity of the normalized affine Y coordinate, the
// conventional sign bit for a short-Weierstrass curve.
func (p *PointBls12381G1) IsNegative() bool {
	a := p.affine()
	return a.Y.Bits()[0]&1 == 1
}

func (p *PointBls12381G1) IsOnCurve() bool {
	a := p.affine()
	return a.IsOnCurve() && a.IsInSubGroup()
}

func (p *PointBls12381G1) Double() Point {
	var v bls12381.G1Jac
	v.Set(&p.value).DoubleAssign()
	return p.wrap(v)
}

func (p *PointBls12381G1) Scalar() Scalar { return NewScalarBls12381G1() }

func (p *PointBls12381G1) Neg() Point {
	var v bls12381.G1Jac
	v.Set(&p.value)
	v.Y.Neg(&v.Y)
	return p.wrap(v)
}

func (p *PointBls12381G1) Add(rhs Point) Point {
	r, ok := rhs.(*PointBls12381G1)
	if !ok || r == nil {
		return nil
	}
	var v bls12381.G1Jac
	v.Set(&p.value).AddAssign(&r.value)
	return p.wrap(v)
}

func (p *PointBls12381G1) Sub(rhs Point) Point {
	r, ok := rhs.(*PointBls12381G1)
	if !ok || r == nil {
		return nil
	}
	neg := r.Neg().(*PointBls12381G1)
	var v bls12381.G1Jac
	v.Set(&p.value).AddAssign(&neg.value)
	return p.wrap(v)
}

func (p *PointBls12381G1) Mul(rhs Scalar) Point {
	s, ok := rhs.(*ScalarBls12381G1)
	if !ok || s == nil {
		return nil
	}
	var v bls12381.G1Jac
	v.ScalarMultiplication(&p.value, s.BigInt())
	return p.wrap(v)
}

func (p *PointBls12381G1) Equal(rhs Point) bool {
	r, ok := rhs.(*PointBls12381G1)
	if !ok || r == nil {
		return false
	}
	a, b := p.affine(), r.affine()
	return a.Equal(&b)
}

func (p *PointBls12381G1) Set(x, y *big.Int) (Point, error) {
	if x == nil || y == nil {
		return nil, fmt.Errorf("curves: nil coordinate")
	}
	var a bls12381.G1Affine
	a.X.SetBigInt(x)
	a.Y.SetBigInt(y)
	if !a.IsOnCurve() {
		return nil, errInvalidPoint("bls12-381", "point not on curve")
	}
	var v bls12381.G1Jac
	v.FromAffine(&a)
	return p.wrap(v), nil
}

func (p *PointBls12381G1) ToAffineCompressed() []byte {
	a := p.affine()
	b := a.Bytes()
	return b[:]
}

func (p *PointBls12381G1) ToAffineUncompressed() []byte {
	a := p.affine()
	b := a.RawBytes()
	return b[:]
}

func (p *PointBls12381G1) FromAffineCompressed(bytes []byte) (Point, error) {
	var a bls12381.G1Affine
	if _, err := a.SetBytes(bytes); err != nil {
		return nil, errInvalidPoint("bls12-381", err.Error())
	}
	if !a.IsInSubGroup() {
		return nil, errInvalidPoint("bls12-381", "point not in prime-order subgroup")
	}
	var v bls12381.G1Jac
	v.FromAffine(&a)
	return p.wrap(v), nil
}

func (p *PointBls12381G1) FromAffineUncompressed(bytes []byte) (Point, error) {
	var a bls12381.G1Affine
	if _, err := a.SetBytes(bytes); err != nil {
		return nil, errInvalidPoint("bls12-381", err.Error())
	}
	var v bls12381.G1Jac
	v.FromAffine(&a)
	return p.wrap(v), nil
}

func (p *PointBls12381G1) CurveName() string { return "bls12-381" }

func (p *PointBls12381G1) X() *big.Int {
	a := p.affine()
	return a.X.BigInt(new(big.Int))
}

func (p *PointBls12381G1) Y() *big.Int {
	a := p.affine()
	return a.Y.BigInt(new(big.Int))
}
