// Command present_ctr encrypts or decrypts stdin to stdout with PRESENT-80 in counter mode. Encryption and decryption
// are the same operation.
package main

import (
	"crypto/cipher"
	"encoding/hex"
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/codahale/present"
)

func main() {
	var (
		keyHex = flag.String("key", "", "the 80-bit key as 20 hex characters")
		ivHex  = flag.String("iv", "0000000000000000", "the 64-bit initial counter as 16 hex characters")
	)
	flag.Parse()

	log := slog.New(slog.Default().Handler())

	key, err := hex.DecodeString(*keyHex)
	if err != nil {
		log.Error("invalid key", "err", err)
		os.Exit(2)
	}

	iv, err := hex.DecodeString(*ivHex)
	if err != nil || len(iv) != present.BlockSize {
		log.Error("invalid iv", "iv", *ivHex, "err", err)
		os.Exit(2)
	}

	c, err := present.NewCipher(key)
	if err != nil {
		log.Error("invalid key", "err", err)
		os.Exit(2)
	}

	r := cipher.StreamReader{S: present.NewCTR(c, iv), R: os.Stdin}
	n, err := io.Copy(os.Stdout, r)
	if err != nil {
		log.Error("failed to process stream", "bytes", n, "err", err)
		os.Exit(1)
	}
	log.Info("processed stream", "bytes", n, "lanes", present.Lanes)
}
