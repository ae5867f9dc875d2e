package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/kemp/hashsig/pkg/hashsig"
)

type cli struct {
	KeyGen keyGenCmd `cmd:"" name:"key-gen" help:"Generate a new two-level Merkle signing key."`
	Sign   signCmd   `cmd:"" help:"Sign a file with the private key."`
	Verify verifyCmd `cmd:"" help:"Verify a signed file."`
}

func main() {
	var cli cli

	ctx := kong.Parse(&cli)
	err := ctx.Run()

	switch {
	case err == nil:
		os.Exit(0)
	case errors.Is(err, hashsig.ErrInvalidSignature):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	case errors.Is(err, hashsig.ErrMalformedSignature), errors.Is(err, hashsig.ErrMalformedPublicKey):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	default:
		ctx.FatalIfErrorf(err)
	}
}
