package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/kemp/hashsig/pkg/hashsig"
)

type signCmd struct {
	File  string `arg:"" help:"The file to sign." type:"existingfile"`
	Armor bool   `help:"Encode the signature as base64 text." short:"a"`
}

func (cmd *signCmd) Run(_ *kong.Context) error {
	sk, err := hashsig.Open(privateKeyPath)
	if err != nil {
		return err
	}

	in, err := openInput(cmd.File, false)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("%w: %v", hashsig.ErrIO, err)
	}

	sig, err := sk.Sign(data)
	if err != nil {
		if errors.Is(err, hashsig.ErrLeafBudgetExhausted) {
			return fmt.Errorf("%w: generate a new key before signing again", err)
		}

		return err
	}

	sigBytes, err := sig.MarshalBinary()
	if err != nil {
		return fmt.Errorf("%w: %v", hashsig.ErrIO, err)
	}

	out, err := openOutput(cmd.File+".signature", cmd.Armor)
	if err != nil {
		return err
	}

	if _, err := out.Write(sigBytes); err != nil {
		_ = out.Close()
		return fmt.Errorf("%w: %v", hashsig.ErrIO, err)
	}

	return out.Close()
}
