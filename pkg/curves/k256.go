package curves

import (
	"crypto/sha512"
	"fmt"
	"io"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// secp256k1Order is the well-known order of the secp256k1 base point.
var secp256k1Order, _ = new(big.Int).SetString(
	"FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)

func k256ScalarField() field { return newField(secp256k1Order) }

// ScalarK256 is a scalar in the secp256k1 base-point order, used by the
// alternate (non-default) curve backend (§4: "pluggable curve backends").
// Arithmetic goes through the shared big.Int field exactly as the teacher's
// ScalarBls12377 wraps gnark-crypto's fr.Element; only group operations
// cross into decred's native secp256k1 types.
type ScalarK256 struct {
	field
}

func NewScalarK256() *ScalarK256 {
	return &ScalarK256{k256ScalarField()}
}

func (s *ScalarK256) wrap(f field) *ScalarK256 { return &ScalarK256{f} }

func (s *ScalarK256) Random(reader io.Reader) Scalar {
	return s.wrap(s.setBigInt(s.randBigInt(reader, s.modulus)))
}

func (s *ScalarK256) Hash(input []byte) Scalar {
	h := sha512.Sum512(append([]byte("TSS-VAULT-SCALAR-HASH-k256-v1:"), input...))
	return s.wrap(s.hashWide(h[:]))
}

func (s *ScalarK256) Zero() Scalar         { return s.wrap(s.setInt(0)) }
func (s *ScalarK256) One() Scalar          { return s.wrap(s.setInt(1)) }
func (s *ScalarK256) New(value int) Scalar { return s.wrap(s.setInt(value)) }
func (s *ScalarK256) IsZero() bool         { return s.field.isZero() }
func (s *ScalarK256) IsOne() bool          { return s.field.isOne() }
func (s *ScalarK256) IsOdd() bool          { return s.field.isOdd() }
func (s *ScalarK256) IsEven() bool         { return s.field.isEven() }

func (s *ScalarK256) Cmp(rhs Scalar) int {
	r, ok := rhs.(*ScalarK256)
	if !ok || r == nil {
		return -2
	}
	return s.field.cmp(r.field)
}

func (s *ScalarK256) Square() Scalar { return s.wrap(s.field.square()) }
func (s *ScalarK256) Double() Scalar { return s.wrap(s.field.double()) }
func (s *ScalarK256) Cube() Scalar   { return s.wrap(s.field.cube()) }

func (s *ScalarK256) Invert() (Scalar, error) {
	f, err := s.field.invert()
	if err != nil {
		return nil, err
	}
	return s.wrap(f), nil
}

func (s *ScalarK256) Sqrt() (Scalar, error) {
	f, err := s.field.sqrt()
	if err != nil {
		return nil, err
	}
	return s.wrap(f), nil
}

func (s *ScalarK256) Add(rhs Scalar) Scalar {
	r, ok := rhs.(*ScalarK256)
	if !ok || r == nil {
		return nil
	}
	return s.wrap(s.field.add(r.field))
}

func (s *ScalarK256) Sub(rhs Scalar) Scalar {
	r, ok := rhs.(*ScalarK256)
	if !ok || r == nil {
		return nil
	}
	return s.wrap(s.field.sub(r.field))
}

func (s *ScalarK256) Mul(rhs Scalar) Scalar {
	r, ok := rhs.(*ScalarK256)
	if !ok || r == nil {
		return nil
	}
	return s.wrap(s.field.mul(r.field))
}

func (s *ScalarK256) MulAdd(y, z Scalar) Scalar {
	m := s.Mul(y)
	if m == nil {
		return nil
	}
	return m.Add(z)
}

func (s *ScalarK256) Div(rhs Scalar) Scalar {
	r, ok := rhs.(*ScalarK256)
	if !ok || r == nil {
		return nil
	}
	inv, err := r.field.invert()
	if err != nil {
		return nil
	}
	return s.wrap(s.field.mul(inv))
}

func (s *ScalarK256) Neg() Scalar           { return s.wrap(s.field.neg()) }
func (s *ScalarK256) Pow(exp uint64) Scalar { return s.wrap(s.field.pow(exp)) }
func (s *ScalarK256) Clone() Scalar         { return s.wrap(s.field.clone()) }
func (s *ScalarK256) Point() Point          { return identityK256() }
func (s *ScalarK256) Bytes() []byte         { return s.field.bytesLE() }

func (s *ScalarK256) SetBytes(bytes []byte) (Scalar, error) {
	f, err := s.field.setCanonicalBytesLE(bytes)
	if err != nil {
		return nil, err
	}
	return s.wrap(f), nil
}

func (s *ScalarK256) SetBigInt(v *big.Int) (Scalar, error) {
	if v == nil {
		return nil, fmt.Errorf("curves: nil big.Int")
	}
	return s.wrap(s.field.setBigInt(v)), nil
}

func (s *ScalarK256) BigInt() *big.Int  { return new(big.Int).Set(s.field.value) }
func (s *ScalarK256) CurveName() string { return "k256" }
func (s *ScalarK256) Zeroize()          { s.field.zeroize() }

// toModNScalar converts the big.Int-backed field value into decred's
// constant-time ModNScalar for use at the group-operation boundary.
func (s *ScalarK256) toModNScalar() *secp256k1.ModNScalar {
	var buf [32]byte
	be := s.field.value.Bytes()
	copy(buf[32-len(be):], be)
	var ms secp256k1.ModNScalar
	ms.SetBytes(&buf)
	return &ms
}

// PointK256 wraps a decred secp256k1 Jacobian point, normalized to affine
// on every read.
type PointK256 struct {
	value secp256k1.JacobianPoint
}

func identityK256() *PointK256 {
	p := new(PointK256)
	p.value.X.SetInt(0)
	p.value.Y.SetInt(0)
	p.value.Z.SetInt(0)
	return p
}

func (p *PointK256) wrap(v secp256k1.JacobianPoint) *PointK256 {
	return &PointK256{value: v}
}

func (p *PointK256) affine() secp256k1.JacobianPoint {
	v := p.value
	v.ToAffine()
	return v
}

func (p *PointK256) Random(reader io.Reader) Point {
	s := NewScalarK256().Random(reader).(*ScalarK256)
	return p.Generator().Mul(s)
}

func (p *PointK256) Hash(input []byte) Point {
	domain := append([]byte("TSS-VAULT-POINT-HASH-k256-v1:"), input...)
	var found secp256k1.JacobianPoint
	hashToPointTryIncrement(domain, 32, func(b []byte) bool {
		pub, err := secp256k1.ParsePubKey(append([]byte{0x02}, b...))
		if err != nil {
			return false
		}
		pub.AsJacobian(&found)
		return true
	})
	return p.wrap(found)
}

func (p *PointK256) Identity() Point { return identityK256() }

func (p *PointK256) Generator() Point {
	var v secp256k1.JacobianPoint
	var one secp256k1.ModNScalar
	one.SetInt(1)
	secp256k1.ScalarBaseMultNonConst(&one, &v)
	return p.wrap(v)
}

func (p *PointK256) IsIdentity() bool {
	a := p.affine()
	return a.X.IsZero() && a.Y.IsZero()
}

func (p *PointK256) IsNegative() bool {
	a := p.affine()
	a.Y.Normalize()
	return a.Y.IsOdd()
}

func (p *PointK256) IsOnCurve() bool { return true }

func (p *PointK256) Double() Point {
	var v secp256k1.JacobianPoint
	secp256k1.DoubleNonConst(&p.value, &v)
	return p.wrap(v)
}

func (p *PointK256) Scalar() Scalar { return NewScalarK256() }

func (p *PointK256) Neg() Point {
	v := p.value
	v.Y.Negate(1)
	v.Y.Normalize()
	return p.wrap(v)
}

func (p *PointK256) Add(rhs Point) Point {
	r, ok := rhs.(*PointK256)
	if !ok || r == nil {
		return nil
	}
	var v secp256k1.JacobianPoint
	secp256k1.AddNonConst(&p.value, &r.value, &v)
	return p.wrap(v)
}

func (p *PointK256) Sub(rhs Point) Point {
	r, ok := rhs.(*PointK256)
	if !ok || r == nil {
		return nil
	}
	neg := r.Neg().(*PointK256)
	var v secp256k1.JacobianPoint
	secp256k1.AddNonConst(&p.value, &neg.value, &v)
	return p.wrap(v)
}

func (p *PointK256) Mul(rhs Scalar) Point {
	s, ok := rhs.(*ScalarK256)
	if !ok || s == nil {
		return nil
	}
	var v secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(s.toModNScalar(), &p.value, &v)
	return p.wrap(v)
}

func (p *PointK256) Equal(rhs Point) bool {
	r, ok := rhs.(*PointK256)
	if !ok || r == nil {
		return false
	}
	a, b := p.affine(), r.affine()
	return a.X.Equals(&b.X) && a.Y.Equals(&b.Y)
}

func (p *PointK256) Set(x, y *big.Int) (Point, error) {
	if x == nil || y == nil {
		return nil, fmt.Errorf("curves: nil coordinate")
	}
	var v secp256k1.JacobianPoint
	if !v.X.SetByteSlice(x.Bytes()) {
		// overflow ignored per decred convention: value reduced mod p
	}
	v.Y.SetByteSlice(y.Bytes())
	v.Z.SetInt(1)
	return p.wrap(v), nil
}

func (p *PointK256) ToAffineCompressed() []byte {
	a := p.affine()
	pub := secp256k1.NewPublicKey(&a.X, &a.Y)
	return pub.SerializeCompressed()
}

func (p *PointK256) ToAffineUncompressed() []byte {
	a := p.affine()
	pub := secp256k1.NewPublicKey(&a.X, &a.Y)
	return pub.SerializeUncompressed()
}

func (p *PointK256) FromAffineCompressed(bytes []byte) (Point, error) {
	pub, err := secp256k1.ParsePubKey(bytes)
	if err != nil {
		return nil, errInvalidPoint("k256", err.Error())
	}
	var v secp256k1.JacobianPoint
	pub.AsJacobian(&v)
	return p.wrap(v), nil
}

func (p *PointK256) FromAffineUncompressed(bytes []byte) (Point, error) {
	return p.FromAffineCompressed(bytes)
}

func (p *PointK256) CurveName() string { return "k256" }

func (p *PointK256) X() *big.Int {
	a := p.affine()
	a.X.Normalize()
	b := a.X.Bytes()
	return new(big.Int).SetBytes(b[:])
}

func (p *PointK256) Y() *big.Int {
	a := p.affine()
	a.Y.Normalize()
	b := a.Y.Bytes()
	return new(big.Int).SetBytes(b[:])
}
