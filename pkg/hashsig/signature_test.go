package hashsig

import (
	"path/filepath"
	"testing"

	"github.com/codahale/gubbins/assert"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSignature_MarshalRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".private_key.json")

	sk, err := GenerateKeyPair(path, 3, 3)
	assert.Equal(t, "keygen error", nil, err, cmpopts.EquateErrors())

	message := []byte("round trip me")

	sig, err := sk.Sign(message)
	assert.Equal(t, "sign error", nil, err, cmpopts.EquateErrors())

	data, err := sig.MarshalBinary()
	assert.Equal(t, "marshal error", nil, err, cmpopts.EquateErrors())

	var decoded Signature
	assert.Equal(t, "unmarshal error", nil, decoded.UnmarshalBinary(data), cmpopts.EquateErrors())
	assert.Equal(t, "top index round trips", sig.TopIndex, decoded.TopIndex, cmpopts.EquateErrors())

	assert.Equal(t, "decoded signature verifies", nil, Verify(sk.PublicKey(), message, &decoded), cmpopts.EquateErrors())
}

func TestSignature_TamperedBytesFailToParseOrVerify(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".private_key.json")

	sk, err := GenerateKeyPair(path, 3, 3)
	assert.Equal(t, "keygen error", nil, err, cmpopts.EquateErrors())

	message := []byte("hello")

	sig, err := sk.Sign(message)
	assert.Equal(t, "sign error", nil, err, cmpopts.EquateErrors())

	data, err := sig.MarshalBinary()
	assert.Equal(t, "marshal error", nil, err, cmpopts.EquateErrors())

	data[len(data)-1] ^= 0xff

	var decoded Signature
	if err := decoded.UnmarshalBinary(data); err != nil {
		return // an invalid structural decode satisfies S3 as much as a failed verify does
	}

	assert.Equal(t, "tampered signature should not verify", ErrInvalidSignature, Verify(sk.PublicKey(), message, &decoded), cmpopts.EquateErrors())
}
