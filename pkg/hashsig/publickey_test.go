package hashsig

import (
	"testing"

	"github.com/codahale/gubbins/assert"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestPublicKey_TextRoundTrip(t *testing.T) {
	t.Parallel()

	want := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

	var pk PublicKey
	assert.Equal(t, "unmarshal error", nil, pk.UnmarshalText([]byte(want)), cmpopts.EquateErrors())
	assert.Equal(t, "string round trip", want, pk.String(), cmpopts.EquateErrors())

	got, err := pk.MarshalText()
	assert.Equal(t, "marshal error", nil, err, cmpopts.EquateErrors())
	assert.Equal(t, "marshal round trip", want, string(got), cmpopts.EquateErrors())
}

func TestPublicKey_WrongLength(t *testing.T) {
	t.Parallel()

	var pk PublicKey
	err := pk.UnmarshalText([]byte("abcd"))

	if err == nil {
		t.Fatal("expected an error for a short hex string")
	}
}

func TestPublicKey_NotHex(t *testing.T) {
	t.Parallel()

	notHex := "zz23456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

	var pk PublicKey
	err := pk.UnmarshalText([]byte(notHex))

	if err == nil {
		t.Fatal("expected an error for a non-hex character")
	}
}
