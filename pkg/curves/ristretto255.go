package curves

import (
	"crypto/sha512"
	"fmt"
	"io"
	"math/big"

	"filippo.io/edwards25519"
	"github.com/bwesterb/go-ristretto"
)

// ristretto255Order is the prime order of the ristretto255 group, identical
// to the Ed25519 scalar field order ℓ = 2^252 + 27742317777372353535851937790883648493.
var ristretto255Order, _ = new(big.Int).SetString(
	"7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

func ristretto255ScalarField() field { return newField(ristretto255Order) }

// ScalarRistretto255 is a scalar in the ristretto255 prime-order scalar
// field. It is the default, canonical backend (§6: 32-byte little-endian
// scalar, 32-byte compressed point).
type ScalarRistretto255 struct {
	field
}

// NewScalarRistretto255 returns the zero scalar, usable as a type-dispatch
// prototype.
func NewScalarRistretto255() *ScalarRistretto255 {
	return &ScalarRistretto255{ristretto255ScalarField()}
}

func (s *ScalarRistretto255) wrap(f field) *ScalarRistretto255 {
	return &ScalarRistretto255{f}
}

func (s *ScalarRistretto255) Random(reader io.Reader) Scalar {
	return s.wrap(s.setBigInt(s.randBigInt(reader, s.modulus)))
}

func (s *ScalarRistretto255) Hash(input []byte) Scalar {
	h := sha512.Sum512(append([]byte("TSS-VAULT-SCALAR-HASH-ristretto255-v1:"), input...))
	return s.wrap(s.hashWide(h[:]))
}

func (s *ScalarRistretto255) Zero() Scalar          { return s.wrap(s.setInt(0)) }
func (s *ScalarRistretto255) One() Scalar           { return s.wrap(s.setInt(1)) }
func (s *ScalarRistretto255) New(value int) Scalar  { return s.wrap(s.setInt(value)) }
func (s *ScalarRistretto255) IsZero() bool          { return s.field.isZero() }
func (s *ScalarRistretto255) IsOne() bool           { return s.field.isOne() }
func (s *ScalarRistretto255) IsOdd() bool           { return s.field.isOdd() }
func (s *ScalarRistretto255) IsEven() bool          { return s.field.isEven() }

// Cmp returns -2 when rhs is nil or backed by a different curve, mirroring
// the teacher's curve comparison tests.
func (s *ScalarRistretto255) Cmp(rhs Scalar) int {
	r, ok := rhs.(*ScalarRistretto255)
	if !ok || r == nil {
		return -2
	}
	return s.field.cmp(r.field)
}

func (s *ScalarRistretto255) Square() Scalar { return s.wrap(s.field.square()) }
func (s *ScalarRistretto255) Double() Scalar { return s.wrap(s.field.double()) }
func (s *ScalarRistretto255) Cube() Scalar   { return s.wrap(s.field.cube()) }

func (s *ScalarRistretto255) Invert() (Scalar, error) {
	f, err := s.field.invert()
	if err != nil {
		return nil, err
	}
	return s.wrap(f), nil
}

func (s *ScalarRistretto255) Sqrt() (Scalar, error) {
	f, err := s.field.sqrt()
	if err != nil {
		return nil, err
	}
	return s.wrap(f), nil
}

func (s *ScalarRistretto255) Add(rhs Scalar) Scalar {
	r, ok := rhs.(*ScalarRistretto255)
	if !ok || r == nil {
		return nil
	}
	return s.wrap(s.field.add(r.field))
}

func (s *ScalarRistretto255) Sub(rhs Scalar) Scalar {
	r, ok := rhs.(*ScalarRistretto255)
	if !ok || r == nil {
		return nil
	}
	return s.wrap(s.field.sub(r.field))
}

func (s *ScalarRistretto255) Mul(rhs Scalar) Scalar {
	r, ok := rhs.(*ScalarRistretto255)
	if !ok || r == nil {
		return nil
	}
	return s.wrap(s.field.mul(r.field))
}

func (s *ScalarRistretto255) MulAdd(y, z Scalar) Scalar {
	m := s.Mul(y)
	if m == nil {
		return nil
	}
	return m.Add(z)
}

func (s *ScalarRistretto255) Div(rhs Scalar) Scalar {
	r, ok := rhs.(*ScalarRistretto255)
	if !ok || r == nil {
		return nil
	}
	inv, err := r.field.invert()
	if err != nil {
		return nil
	}
	return s.wrap(s.field.mul(inv))
}

func (s *ScalarRistretto255) Neg() Scalar           { return s.wrap(s.field.neg()) }
func (s *ScalarRistretto255) Pow(exp uint64) Scalar { return s.wrap(s.field.pow(exp)) }
func (s *ScalarRistretto255) Clone() Scalar         { return s.wrap(s.field.clone()) }
func (s *ScalarRistretto255) Point() Point          { return identityRistretto255() }
func (s *ScalarRistretto255) Bytes() []byte         { return s.field.bytesLE() }

// SetBytes decodes a 32-byte little-endian scalar, rejecting non-canonical
// encodings twice over: once via filippo.io/edwards25519's own canonical
// check (the library the rest of the ecosystem trusts for Ed25519-family
// scalar hygiene) and once via the shared field modulus check, so a bug in
// either check alone can't silently accept a forged share.
func (s *ScalarRistretto255) SetBytes(bytes []byte) (Scalar, error) {
	if len(bytes) == 32 {
		if _, err := edwards25519.NewScalar().SetCanonicalBytes(bytes); err != nil {
			return nil, fmt.Errorf("curves: non-canonical ristretto255 scalar: %w", err)
		}
	}
	f, err := s.field.setCanonicalBytesLE(bytes)
	if err != nil {
		return nil, err
	}
	return s.wrap(f), nil
}

func (s *ScalarRistretto255) SetBigInt(v *big.Int) (Scalar, error) {
	if v == nil {
		return nil, fmt.Errorf("curves: nil big.Int")
	}
	return s.wrap(s.field.setBigInt(v)), nil
}

func (s *ScalarRistretto255) BigInt() *big.Int  { return new(big.Int).Set(s.field.value) }
func (s *ScalarRistretto255) CurveName() string { return "ristretto255" }
func (s *ScalarRistretto255) Zeroize()          { s.field.zeroize() }

// PointRistretto255 wraps a bwesterb/go-ristretto group element.
type PointRistretto255 struct {
	value ristretto.Point
}

func identityRistretto255() *PointRistretto255 {
	p := new(PointRistretto255)
	p.value.SetZero()
	return p
}

func (p *PointRistretto255) wrap(v ristretto.Point) *PointRistretto255 {
	return &PointRistretto255{value: v}
}

func (p *PointRistretto255) Random(reader io.Reader) Point {
	s := NewScalarRistretto255().Random(reader).(*ScalarRistretto255)
	return p.Generator().Mul(s)
}

// Hash derives a point via try-and-increment hash-to-curve (hash_try_increment.go),
// never via naive scalar multiplication of the generator.
func (p *PointRistretto255) Hash(input []byte) Point {
	domain := append([]byte("TSS-VAULT-POINT-HASH-ristretto255-v1:"), input...)
	var found ristretto.Point
	hashToPointTryIncrement(domain, 32, func(b []byte) bool {
		var candidate ristretto.Point
		if err := candidate.UnmarshalBinary(b); err != nil {
			return false
		}
		found = candidate
		return true
	})
	return p.wrap(found)
}

func (p *PointRistretto255) Identity() Point {
	var v ristretto.Point
	v.SetZero()
	return p.wrap(v)
}

func (p *PointRistretto255) Generator() Point {
	var v ristretto.Point
	v.SetBase()
	return p.wrap(v)
}

func (p *PointRistretto255) IsIdentity() bool {
	var zero ristretto.Point
	zero.SetZero()
	return p.value.Equals(&zero)
}

// IsNegative is always false: ristretto255's canonical encoding has no
// Weierstrass-style sign bit to report.
func (p *PointRistretto255) IsNegative() bool { return false }

// IsOnCurve is always true for a PointRistretto255 value: every
// constructor path (Identity, Generator, arithmetic results, or a
// successful FromAffineCompressed decode) already validates membership in
// the prime-order subgroup.
func (p *PointRistretto255) IsOnCurve() bool { return true }

func (p *PointRistretto255) Double() Point {
	var v ristretto.Point
	v.Add(&p.value, &p.value)
	return p.wrap(v)
}

func (p *PointRistretto255) Scalar() Scalar { return NewScalarRistretto255() }

func (p *PointRistretto255) Neg() Point {
	var v ristretto.Point
	v.Neg(&p.value)
	return p.wrap(v)
}

func (p *PointRistretto255) Add(rhs Point) Point {
	r, ok := rhs.(*PointRistretto255)
	if !ok || r == nil {
		return nil
	}
	var v ristretto.Point
	v.Add(&p.value, &r.value)
	return p.wrap(v)
}

func (p *PointRistretto255) Sub(rhs Point) Point {
	r, ok := rhs.(*PointRistretto255)
	if !ok || r == nil {
		return nil
	}
	var v ristretto.Point
	v.Sub(&p.value, &r.value)
	return p.wrap(v)
}

func (p *PointRistretto255) Mul(rhs Scalar) Point {
	s, ok := rhs.(*ScalarRistretto255)
	if !ok || s == nil {
		return nil
	}
	var rs ristretto.Scalar
	var arr [32]byte
	copy(arr[:], s.Bytes())
	rs.SetBytes(&arr)
	var v ristretto.Point
	v.ScalarMult(&p.value, &rs)
	return p.wrap(v)
}

func (p *PointRistretto255) Equal(rhs Point) bool {
	r, ok := rhs.(*PointRistretto255)
	if !ok || r == nil {
		return false
	}
	return p.value.Equals(&r.value)
}

// Set treats x as the big-endian integer form of the 32-byte compressed
// ristretto255 encoding; ristretto255 has no independent affine y
// coordinate to report, so y is ignored.
func (p *PointRistretto255) Set(x, y *big.Int) (Point, error) {
	if x == nil {
		return nil, fmt.Errorf("curves: nil x coordinate")
	}
	b := make([]byte, 32)
	xb := x.Bytes()
	if len(xb) > 32 {
		return nil, errInvalidPoint("ristretto255", "x too large")
	}
	copy(b[32-len(xb):], xb)
	return p.FromAffineCompressed(b)
}

func (p *PointRistretto255) ToAffineCompressed() []byte {
	b, _ := p.value.MarshalBinary()
	return b
}

// ToAffineUncompressed returns the same 32-byte encoding as
// ToAffineCompressed: ristretto255 has no separate uncompressed form.
func (p *PointRistretto255) ToAffineUncompressed() []byte {
	return p.ToAffineCompressed()
}

func (p *PointRistretto255) FromAffineCompressed(bytes []byte) (Point, error) {
	if len(bytes) != 32 {
		return nil, errInvalidPoint("ristretto255", "expected 32 bytes")
	}
	var v ristretto.Point
	if err := v.UnmarshalBinary(bytes); err != nil {
		return nil, errInvalidPoint("ristretto255", err.Error())
	}
	return p.wrap(v), nil
}

func (p *PointRistretto255) FromAffineUncompressed(bytes []byte) (Point, error) {
	return p.FromAffineCompressed(bytes)
}

func (p *PointRistretto255) CurveName() string { return "ristretto255" }

func (p *PointRistretto255) X() *big.Int {
	b := p.ToAffineCompressed()
	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-1-i] = v
	}
	return new(big.Int).SetBytes(be)
}

// Y always reports zero: see the Set doc comment.
func (p *PointRistretto255) Y() *big.Int { return big.NewInt(0) }
