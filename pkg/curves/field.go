package curves

import (
	"crypto/subtle"
	"fmt"
	"io"
	"math/big"
)

// field holds the shared modular-arithmetic plumbing reused by every
// concrete Scalar implementation in this package (ScalarRistretto255,
// ScalarK256, ScalarBls12381G1). Each backend stores its value as a
// reduced *big.Int the way the teacher's ScalarBls12377 does (see
// bls12377_curve_test.go's `s.value` assertions); field centralizes the
// mod-m arithmetic so the three backends don't reimplement it three times.
type field struct {
	value   *big.Int
	modulus *big.Int
}

func newField(modulus *big.Int) field {
	return field{value: new(big.Int), modulus: modulus}
}

func (f field) clone() field {
	return field{value: new(big.Int).Set(f.value), modulus: f.modulus}
}

func (f field) reduce(v *big.Int) *big.Int {
	r := new(big.Int).Mod(v, f.modulus)
	if r.Sign() < 0 {
		r.Add(r, f.modulus)
	}
	return r
}

func (f field) setBigInt(v *big.Int) field {
	out := f.clone()
	out.value = f.reduce(v)
	return out
}

func (f field) setInt(v int) field {
	return f.setBigInt(big.NewInt(int64(v)))
}

func (f field) isZero() bool { return f.value.Sign() == 0 }
func (f field) isOne() bool  { return f.value.Cmp(big.NewInt(1)) == 0 }
func (f field) isOdd() bool  { return f.value.Bit(0) == 1 }
func (f field) isEven() bool { return f.value.Bit(0) == 0 }

// cmp is constant-time-flavored only in the sense required by §3: it never
// branches the control flow of the CALLER on secret data beyond returning
// an integer, matching big.Int.Cmp's data-independent algorithm.
func (f field) cmp(rhs field) int {
	return f.value.Cmp(rhs.value)
}

func (f field) add(rhs field) field {
	out := f.clone()
	out.value = f.reduce(new(big.Int).Add(f.value, rhs.value))
	return out
}

func (f field) sub(rhs field) field {
	out := f.clone()
	out.value = f.reduce(new(big.Int).Sub(f.value, rhs.value))
	return out
}

func (f field) mul(rhs field) field {
	out := f.clone()
	out.value = f.reduce(new(big.Int).Mul(f.value, rhs.value))
	return out
}

func (f field) neg() field {
	out := f.clone()
	out.value = f.reduce(new(big.Int).Neg(f.value))
	return out
}

func (f field) square() field { return f.mul(f) }
func (f field) double() field { return f.add(f) }
func (f field) cube() field   { return f.mul(f).mul(f) }

func (f field) invert() (field, error) {
	if f.isZero() {
		return field{}, fmt.Errorf("curves: cannot invert zero scalar")
	}
	out := f.clone()
	out.value = new(big.Int).ModInverse(f.value, f.modulus)
	return out, nil
}

func (f field) pow(exp uint64) field {
	out := f.clone()
	out.value = new(big.Int).Exp(f.value, new(big.Int).SetUint64(exp), f.modulus)
	return out
}

func (f field) sqrt() (field, error) {
	if f.isZero() {
		return f.clone(), nil
	}
	out := f.clone()
	root := new(big.Int).ModSqrt(f.value, f.modulus)
	if root == nil {
		return field{}, fmt.Errorf("curves: not a quadratic residue")
	}
	out.value = root
	return out, nil
}

// bytesLE returns the field element as 32-byte little-endian, the §6
// canonical scalar wire form, zero-padded on the right.
func (f field) bytesLE() []byte {
	buf := make([]byte, 32)
	b := f.value.Bytes() // big-endian
	for i := 0; i < len(b) && i < 32; i++ {
		buf[i] = b[len(b)-1-i]
	}
	return buf
}

// setCanonicalBytesLE decodes 32 little-endian bytes, rejecting any
// encoding that isn't already the unique representative in [0, modulus).
func (f field) setCanonicalBytesLE(b []byte) (field, error) {
	if len(b) != 32 {
		return field{}, fmt.Errorf("curves: scalar must be 32 bytes, got %d", len(b))
	}
	be := make([]byte, 32)
	for i := 0; i < 32; i++ {
		be[i] = b[31-i]
	}
	v := new(big.Int).SetBytes(be)
	if v.Cmp(f.modulus) >= 0 {
		return field{}, fmt.Errorf("curves: non-canonical scalar encoding")
	}
	out := f.clone()
	out.value = v
	return out, nil
}

// hashWide reduces a wide (>= 2x field size) hash digest modulo the field's
// modulus, the standard "hash then reduce" construction used for hash-to-scalar.
func (f field) hashWide(digest []byte) field {
	out := f.clone()
	out.value = f.reduce(new(big.Int).SetBytes(digest))
	return out
}

// zeroize overwrites the field element's value in place with zero. Because
// value is a *big.Int, this clears the exact backing storage this field
// instance holds without disturbing any clone's independent storage.
func (f field) zeroize() {
	if f.value != nil {
		f.value.SetInt64(0)
	}
}

func (f field) randBigInt(reader io.Reader, max *big.Int) *big.Int {
	v, err := cryptoRandInt(reader, max)
	if err != nil {
		panic(err) // RNG failure is unrecoverable for a secret-sampling path
	}
	return v
}

// constantTimeEqualBytes compares two byte slices without branching on
// their contents, per §3's "scalar equality involving secrets uses
// constant-time comparison."
func constantTimeEqualBytes(a, b []byte) bool {
	return len(a) == len(b) && subtle.ConstantTimeCompare(a, b) == 1
}
