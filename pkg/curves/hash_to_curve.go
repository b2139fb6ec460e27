package curves

// secondGeneratorDomain is the fixed domain-separation string used to derive
// each curve's independent Pedersen generator H. It is distinct from the
// Schnorr challenge domain string in pkg/schnorr so the two hash-to-X uses
// can never collide.
const secondGeneratorDomain = "TSS-VAULT-PEDERSEN-H-v1"

// deriveSecondGenerator computes H = HashToCurve(secondGeneratorDomain) for
// the given curve. Every concrete Point implementation's Hash method is a
// try-and-increment (or SSWU, for the pairing-friendly backend)
// hash-to-curve construction, not a small-scalar multiple of G, so nobody
// who doesn't already know the hash preimage structure learns log_G(H).
func deriveSecondGenerator(c *Curve) Point {
	return c.Point.Hash([]byte(secondGeneratorDomain))
}
