package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kemp/hashsig/internal/armor"
	"golang.org/x/term"
)

const privateKeyPath = "./.private_key.json"

// openInput opens path for reading, or stdin if path is "-", optionally de-armoring it.
func openInput(path string, useArmor bool) (io.ReadCloser, error) {
	src := io.ReadCloser(os.Stdin)

	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}

		src = f
	}

	if useArmor {
		return io.NopCloser(armor.NewDecoder(src)), nil
	}

	return src, nil
}

// openOutput opens path for writing, or stdout if path is "-", optionally armoring it.
func openOutput(path string, useArmor bool) (io.WriteCloser, error) {
	dst := io.WriteCloser(nopWriteCloser{os.Stdout})

	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}

		dst = f
	}

	if useArmor {
		return armor.NewEncoder(dst), nil
	}

	return dst, nil
}

// confirmOverwrite asks the user to confirm overwriting path when stdin is a terminal,
// and refuses silently (returns false) when it isn't, since there's no one to ask.
func confirmOverwrite(path string) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return true, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, nil
	}

	_, _ = io.WriteString(os.Stderr, path+" already exists. Overwrite? [y/N] ")

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false, nil
	}

	return response == "y" || response == "Y", nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
