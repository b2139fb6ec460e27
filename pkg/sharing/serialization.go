package sharing

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	bare "git.sr.ht/~sircmpwn/go-bare"
	"github.com/teenet-io/tss-vault/pkg/curves"
	"github.com/teenet-io/tss-vault/pkg/schnorr"
)

// wireProof mirrors the external JSON contract's proof sub-object field
// order (§6): T, z_s, z_r.
type wireProof struct {
	T  string `json:"T"`
	Zs string `json:"z_s"`
	Zr string `json:"z_r"`
}

// wireRecord mirrors the external JSON contract's share-record field
// order: index, share, commitment, random, proof. Go's encoding/json
// marshals struct fields in declaration order, so this layout is what
// appears on the wire.
type wireRecord struct {
	Index      uint32    `json:"index"`
	Share      string    `json:"share"`
	Commitment string    `json:"commitment"`
	Random     string    `json:"random"`
	Proof      wireProof `json:"proof"`
}

// MarshalJSON renders the record in the external textual contract: lowercase
// hex scalars and points, field order index/share/commitment/random/proof.
func (r *ShareRecord) MarshalJSON() ([]byte, error) {
	w := wireRecord{
		Index:      r.Index,
		Share:      hex.EncodeToString(r.Share.Bytes()),
		Commitment: hex.EncodeToString(r.Commitment.Bytes()),
		Random:     hex.EncodeToString(r.Random.Bytes()),
		Proof: wireProof{
			T:  hex.EncodeToString(r.Proof.T.ToAffineCompressed()),
			Zs: hex.EncodeToString(r.Proof.Zs.Bytes()),
			Zr: hex.EncodeToString(r.Proof.Zr.Bytes()),
		},
	}
	return json.Marshal(w)
}

// ShareRecordFromJSON decodes a record previously produced by MarshalJSON,
// rejecting non-canonical scalar encodings and identity commitments via
// the underlying curve decode paths.
func ShareRecordFromJSON(curve *curves.Curve, data []byte) (*ShareRecord, error) {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("sharing: decode share record: %w", err)
	}

	share, err := decodeScalar(curve, w.Share)
	if err != nil {
		return nil, fmt.Errorf("sharing: share field: %w", err)
	}
	commitmentBytes, err := hex.DecodeString(w.Commitment)
	if err != nil {
		return nil, fmt.Errorf("sharing: commitment field: %w", err)
	}
	commitment, err := schnorr.CommitmentFromBytes(curve, commitmentBytes)
	if err != nil {
		return nil, fmt.Errorf("sharing: commitment field: %w", err)
	}
	random, err := decodeScalar(curve, w.Random)
	if err != nil {
		return nil, fmt.Errorf("sharing: random field: %w", err)
	}
	tBytes, err := hex.DecodeString(w.Proof.T)
	if err != nil {
		return nil, fmt.Errorf("sharing: proof.T field: %w", err)
	}
	t, err := curve.Point.FromAffineCompressed(tBytes)
	if err != nil {
		return nil, fmt.Errorf("sharing: proof.T field: %w", err)
	}
	zs, err := decodeScalar(curve, w.Proof.Zs)
	if err != nil {
		return nil, fmt.Errorf("sharing: proof.z_s field: %w", err)
	}
	zr, err := decodeScalar(curve, w.Proof.Zr)
	if err != nil {
		return nil, fmt.Errorf("sharing: proof.z_r field: %w", err)
	}

	return &ShareRecord{
		Curve:      curve,
		Index:      w.Index,
		Share:      share,
		Random:     random,
		Commitment: commitment,
		Proof:      &schnorr.Proof{T: t, Zs: zs, Zr: zr},
	}, nil
}

func decodeScalar(curve *curves.Curve, hexStr string) (curves.Scalar, error) {
	b, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, err
	}
	return curve.Scalar.SetBytes(b)
}

// bareShareRecord is the compact binary encoding used for on-disk share
// export, in BARE form (git.sr.ht/~sircmpwn/go-bare) rather than JSON, for
// operators who prefer a non-textual transport.
type bareShareRecord struct {
	Index      uint32 `bare:"uint"`
	Share      []byte `bare:"data"`
	Commitment []byte `bare:"data"`
	Random     []byte `bare:"data"`
	ProofT     []byte `bare:"data"`
	ProofZs    []byte `bare:"data"`
	ProofZr    []byte `bare:"data"`
}

// MarshalBARE renders the record as a compact BARE message.
func (r *ShareRecord) MarshalBARE() ([]byte, error) {
	b := bareShareRecord{
		Index:      r.Index,
		Share:      r.Share.Bytes(),
		Commitment: r.Commitment.Bytes(),
		Random:     r.Random.Bytes(),
		ProofT:     r.Proof.T.ToAffineCompressed(),
		ProofZs:    r.Proof.Zs.Bytes(),
		ProofZr:    r.Proof.Zr.Bytes(),
	}
	return bare.Marshal(&b)
}

// ShareRecordFromBARE decodes a record previously produced by MarshalBARE.
func ShareRecordFromBARE(curve *curves.Curve, data []byte) (*ShareRecord, error) {
	var b bareShareRecord
	if err := bare.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("sharing: decode BARE share record: %w", err)
	}
	share, err := curve.Scalar.SetBytes(b.Share)
	if err != nil {
		return nil, fmt.Errorf("sharing: share field: %w", err)
	}
	commitment, err := schnorr.CommitmentFromBytes(curve, b.Commitment)
	if err != nil {
		return nil, fmt.Errorf("sharing: commitment field: %w", err)
	}
	random, err := curve.Scalar.SetBytes(b.Random)
	if err != nil {
		return nil, fmt.Errorf("sharing: random field: %w", err)
	}
	t, err := curve.Point.FromAffineCompressed(b.ProofT)
	if err != nil {
		return nil, fmt.Errorf("sharing: proof.T field: %w", err)
	}
	zs, err := curve.Scalar.SetBytes(b.ProofZs)
	if err != nil {
		return nil, fmt.Errorf("sharing: proof.z_s field: %w", err)
	}
	zr, err := curve.Scalar.SetBytes(b.ProofZr)
	if err != nil {
		return nil, fmt.Errorf("sharing: proof.z_r field: %w", err)
	}
	return &ShareRecord{
		Curve:      curve,
		Index:      b.Index,
		Share:      share,
		Random:     random,
		Commitment: commitment,
		Proof:      &schnorr.Proof{T: t, Zs: zs, Zr: zr},
	}, nil
}
