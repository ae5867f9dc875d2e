package hashsig

import (
	"github.com/kemp/hashsig/pkg/hashsig/internal/digest"
	"github.com/kemp/hashsig/pkg/hashsig/internal/qsig"
)

// Verify checks sig against pk for message m (§4.5 "Verify"): recompute d_msg,
// q-indexed-verify the inner signature against (inner_public_key, d_msg), then
// q-indexed-verify the outer signature against (outer_root, Hash(serialize(inner_public_key))).
func Verify(pk *PublicKey, m []byte, sig *Signature) error {
	if sig == nil || sig.InnerPublicKey == nil || sig.InnerSignature == nil || sig.OuterSignature == nil {
		return ErrMalformedSignature
	}

	if sig.OuterSignature.Index != sig.TopIndex {
		return ErrMalformedSignature
	}

	dMsg := digest.Message(m)

	if !qsig.Verify(sig.InnerPublicKey, dMsg, sig.InnerSignature) {
		return ErrInvalidSignature
	}

	bindingDigest, err := innerBindingDigest(sig.InnerPublicKey)
	if err != nil {
		return ErrMalformedSignature
	}

	outerDepth := len(sig.OuterSignature.InclusionPath)
	outerPK := &qsig.PublicKey{Root: pk.Root, Depth: outerDepth}

	if !qsig.Verify(outerPK, bindingDigest, sig.OuterSignature) {
		return ErrInvalidSignature
	}

	return nil
}

// VerifyBytes is the browser-binding entry point (§6): given the raw file bytes, the
// canonical signature bytes, and the public key's 64-character lowercase hex, it
// returns one of "valid", "invalid_signature", "cant_parse_signature", or
// "invalid_public_key" — never an error value, since this is the contract a
// wasm_bindgen-style host consumes as a plain string.
//
// The check order mirrors the reference verifier: the public key is parsed first, then
// the signature, then the cryptographic verification runs.
func VerifyBytes(fileBytes, signatureBytes, publicKeyHex []byte) string {
	var pk PublicKey
	if err := pk.UnmarshalText(publicKeyHex); err != nil {
		return "invalid_public_key"
	}

	var sig Signature
	if err := sig.UnmarshalBinary(signatureBytes); err != nil {
		return "cant_parse_signature"
	}

	if err := Verify(&pk, fileBytes, &sig); err != nil {
		return "invalid_signature"
	}

	return "valid"
}
