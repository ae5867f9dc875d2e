package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/kemp/hashsig/pkg/hashsig"
)

type keyGenCmd struct {
	Depth    int `help:"The outer Merkle tree depth (leaf budget = 2^depth)." default:"10"`
	BotDepth int `help:"The inner Merkle tree depth." default:"10" name:"bot-depth"`
}

func (cmd *keyGenCmd) Run(_ *kong.Context) error {
	ok, err := confirmOverwrite(privateKeyPath)
	if err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("refusing to overwrite %s", privateKeyPath)
	}

	sk, err := hashsig.GenerateKeyPair(privateKeyPath, cmd.Depth, cmd.BotDepth)
	if err != nil {
		return err
	}

	if err := sk.Save(); err != nil {
		return err
	}

	fmt.Println(sk.PublicKey().String())

	return nil
}
