package curves

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// maxHashToCurveAttempts bounds the try-and-increment search. The expected
// number of attempts for a curve with roughly half-density valid encodings
// is ~2; this is a generous safety margin, not a tuned constant.
const maxHashToCurveAttempts = 1 << 16

// hashToPointTryIncrement implements try-and-increment hash-to-curve: hash
// domain||counter with BLAKE2b-512, take the low `byteLen` bytes as a
// candidate compressed point encoding, and accept the first candidate that
// decodes successfully. This is the shared mechanism behind the ristretto255
// and k256 backends' Point.Hash, and so behind their second generator H
// (the bls12-381 backend uses gnark-crypto's SSWU HashToG1 instead) (§4.A: "H is
// produced by hashing a fixed constant string to a curve point via a
// hash-to-curve construction, not by naïve multiplication of G"). Nothing in
// §6's byte-exact wire format touches this path — that contract governs
// only the Schnorr challenge hash in pkg/schnorr.
func hashToPointTryIncrement(domain []byte, byteLen int, decode func([]byte) bool) []byte {
	for counter := uint32(0); counter < maxHashToCurveAttempts; counter++ {
		h, _ := blake2b.New512(nil)
		h.Write(domain)
		var cb [4]byte
		binary.BigEndian.PutUint32(cb[:], counter)
		h.Write(cb[:])
		digest := h.Sum(nil)
		if len(digest) < byteLen {
			digest = append(digest, digest...)
		}
		candidate := make([]byte, byteLen)
		copy(candidate, digest[:byteLen])
		if decode(candidate) {
			return candidate
		}
	}
	panic("curves: hash-to-curve exhausted candidate space, domain string is degenerate")
}
