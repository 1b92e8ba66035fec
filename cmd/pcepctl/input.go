// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/spf13/pflag"
)

func addInputFlags(fs *pflag.FlagSet) {
	fs.String("file", "", "read objects from a file instead of arguments")
	fs.Bool("hex", false, "the file holds hex text instead of raw bytes")
}

// readInput returns the bytes given as hex arguments, or read from --file.
func readInput(fs *pflag.FlagSet, args []string) ([]byte, error) {
	file, err := fs.GetString("file")
	if err != nil {
		return nil, err
	}
	if file == "" {
		if len(args) == 0 {
			return nil, errors.New("no input: pass hex bytes or --file")
		}
		return parseHex(strings.Join(args, ""))
	}
	if len(args) > 0 {
		return nil, errors.New("hex arguments and --file are exclusive")
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	isHex, err := fs.GetBool("hex")
	if err != nil {
		return nil, err
	}
	if isHex {
		return parseHex(string(data))
	}
	return data, nil
}

// parseHex accepts hex digits separated by whitespace or colons, with an optional 0x prefix.
func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == ':' {
			return -1
		}
		return r
	}, s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return b, nil
}
