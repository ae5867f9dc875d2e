package main

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/kemp/hashsig/pkg/hashsig"
)

type verifyCmd struct {
	File         string `arg:"" help:"The file that was signed." type:"existingfile"`
	Signature    string `arg:"" help:"The signature file." type:"existingfile"`
	PublicKeyHex string `arg:"" help:"The signer's public key, as 64 hex characters."`
	Armor        bool   `help:"The signature is base64 text." short:"a"`
}

func (cmd *verifyCmd) Run(_ *kong.Context) error {
	fileIn, err := openInput(cmd.File, false)
	if err != nil {
		return err
	}
	defer func() { _ = fileIn.Close() }()

	fileBytes, err := io.ReadAll(fileIn)
	if err != nil {
		return fmt.Errorf("%w: %v", hashsig.ErrIO, err)
	}

	sigIn, err := openInput(cmd.Signature, cmd.Armor)
	if err != nil {
		return err
	}
	defer func() { _ = sigIn.Close() }()

	sigBytes, err := io.ReadAll(sigIn)
	if err != nil {
		return fmt.Errorf("%w: %v", hashsig.ErrIO, err)
	}

	var pk hashsig.PublicKey
	if err := pk.UnmarshalText([]byte(cmd.PublicKeyHex)); err != nil {
		return err
	}

	var sig hashsig.Signature
	if err := sig.UnmarshalBinary(sigBytes); err != nil {
		return err
	}

	return hashsig.Verify(&pk, fileBytes, &sig)
}
