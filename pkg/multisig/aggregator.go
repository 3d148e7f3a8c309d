package multisig

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// SignatureLength is the length of a serialized owner signature (r||s||v).
const SignatureLength = 65

// Signature is an ECDSA signature produced by one owner over the digest of an
// encoded multisig transaction. V carries the recovery id shifted to 27/28.
type Signature struct {
	R [32]byte
	S [32]byte
	V byte
}

// ParseSignature deserializes a 65-byte r||s||v signature.
func ParseSignature(raw []byte) (Signature, error) {
	if len(raw) != SignatureLength {
		return Signature{}, ErrInvalidSignatureLength
	}
	var sig Signature
	copy(sig.R[:], raw[:32])
	copy(sig.S[:], raw[32:64])
	sig.V = raw[64]
	return sig, nil
}

// Bytes serializes the signature as r||s||v.
func (s Signature) Bytes() []byte {
	buf := make([]byte, 0, SignatureLength)
	buf = append(buf, s.R[:]...)
	buf = append(buf, s.S[:]...)
	buf = append(buf, s.V)
	return buf
}

// SignedBy binds a signature to the owner identity it recovers to. The
// contract never receives the identity explicitly, it recovers it from the
// signature, which is why the aggregation order below matters.
type SignedBy struct {
	Signer    common.Address
	Signature Signature
}

// Aggregate concatenates the given owner signatures into the blob the
// contract expects: signatures sorted strictly ascending by the raw bytes of
// their signer address, each serialized as r||s||v. The contract recovers
// signer identities in order and rejects any blob whose recovered addresses
// are not strictly increasing, so the sort is a protocol requirement.
// The result is invariant to the input order.
func Aggregate(threshold int, sigs []SignedBy) ([]byte, error) {
	if threshold <= 0 {
		return nil, ErrInvalidThreshold
	}

	seen := make(map[common.Address]struct{}, len(sigs))
	for _, s := range sigs {
		if _, ok := seen[s.Signer]; ok {
			return nil, ErrDuplicateSigner
		}
		seen[s.Signer] = struct{}{}
	}
	if len(sigs) < threshold {
		return nil, ErrInsufficientSignatures
	}

	sorted := make([]SignedBy, len(sigs))
	copy(sorted, sigs)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(
			sorted[i].Signer.Bytes(), sorted[j].Signer.Bytes(),
		) < 0
	})

	blob := make([]byte, 0, len(sorted)*SignatureLength)
	for _, s := range sorted {
		blob = append(blob, s.Signature.Bytes()...)
	}
	return blob, nil
}
