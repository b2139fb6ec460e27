package curves

// init registers every concrete curve backend by its canonical name.
// ristretto255 is the default curve named throughout §6's wire formats;
// k256 and bls12-381 are opt-in alternates selected by name through
// GetCurveByName (the CLI's --curve flag); vault.Config has no curve option.
func init() {
	registerCurve(&Curve{
		Scalar: NewScalarRistretto255(),
		Point:  identityRistretto255(),
		Name:   "ristretto255",
	})
	registerCurve(&Curve{
		Scalar: NewScalarK256(),
		Point:  identityK256(),
		Name:   "k256",
	})
	registerCurve(&Curve{
		Scalar: NewScalarBls12381G1(),
		Point:  identityBls12381G1(),
		Name:   "bls12-381",
	})
}

// DefaultCurveName is the curve used when no explicit backend is
// configured.
const DefaultCurveName = "ristretto255"

// DefaultCurve returns the registered default curve.
func DefaultCurve() *Curve { return GetCurveByName(DefaultCurveName) }
