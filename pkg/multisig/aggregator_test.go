package multisig

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedBy(addrByte, marker byte) SignedBy {
	var addr common.Address
	addr[19] = addrByte
	var sig Signature
	sig.R[0] = marker
	sig.V = 27
	return SignedBy{Signer: addr, Signature: sig}
}

func TestAggregateSortsBySignerAddress(t *testing.T) {
	third := signedBy(0x03, 0xc0)
	first := signedBy(0x01, 0xa0)
	second := signedBy(0x02, 0xb0)

	blob, err := Aggregate(3, []SignedBy{third, first, second})
	if err != nil {
		t.Fatal(err)
	}

	require.Len(t, blob, 3*SignatureLength)
	assert.Equal(t, byte(0xa0), blob[0])
	assert.Equal(t, byte(0xb0), blob[SignatureLength])
	assert.Equal(t, byte(0xc0), blob[2*SignatureLength])
}

func TestAggregateIsInputOrderInvariant(t *testing.T) {
	sigs := []SignedBy{
		signedBy(0x0a, 0x01), signedBy(0x0b, 0x02), signedBy(0x0c, 0x03),
	}
	shuffled := []SignedBy{sigs[2], sigs[0], sigs[1]}

	blob, err := Aggregate(3, sigs)
	if err != nil {
		t.Fatal(err)
	}
	otherBlob, err := Aggregate(3, shuffled)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, blob, otherBlob)
}

func TestAggregateRejectsDuplicateSigner(t *testing.T) {
	sigs := []SignedBy{
		signedBy(0x01, 0xa0), signedBy(0x02, 0xb0), signedBy(0x01, 0xc0),
	}

	_, err := Aggregate(2, sigs)
	assert.ErrorIs(t, err, ErrDuplicateSigner)
}

func TestAggregateRejectsInsufficientSignatures(t *testing.T) {
	sigs := []SignedBy{signedBy(0x01, 0xa0)}

	_, err := Aggregate(2, sigs)
	assert.ErrorIs(t, err, ErrInsufficientSignatures)
}

func TestAggregateRejectsInvalidThreshold(t *testing.T) {
	_, err := Aggregate(0, nil)
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = Aggregate(-1, nil)
	assert.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestAggregateAcceptsMoreThanThreshold(t *testing.T) {
	sigs := []SignedBy{
		signedBy(0x01, 0xa0), signedBy(0x02, 0xb0), signedBy(0x03, 0xc0),
	}

	blob, err := Aggregate(2, sigs)
	if err != nil {
		t.Fatal(err)
	}
	assert.Len(t, blob, 3*SignatureLength)
}

func TestParseSignatureRoundTrip(t *testing.T) {
	raw := make([]byte, SignatureLength)
	for i := range raw {
		raw[i] = byte(i)
	}
	raw[64] = 28

	sig, err := ParseSignature(raw)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, byte(28), sig.V)
	assert.Equal(t, raw, sig.Bytes())
}

func TestParseSignatureRejectsWrongLength(t *testing.T) {
	_, err := ParseSignature(make([]byte, 64))
	assert.ErrorIs(t, err, ErrInvalidSignatureLength)

	_, err = ParseSignature(make([]byte, 66))
	assert.ErrorIs(t, err, ErrInvalidSignatureLength)
}
