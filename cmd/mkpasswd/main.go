// Command mkpasswd interactively hashes a password for the credential store.
//
// It prompts twice with terminal echo disabled and, when both entries
// match, prints the salt as hexadecimal octet pairs, a single space, and
// the digest as hexadecimal octet pairs.  On a mismatch it starts over,
// generating a fresh salt for the next attempt.  With --ssha it prints the
// {SSHA} encoded string instead of the raw salt/digest pair.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/OrangeTide/boris-sub001/passwd"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mkpasswd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ssha := flag.Bool("ssha", false, "print the {SSHA} encoded string instead of salt and digest")
	saltLen := flag.Int("salt-len", passwd.DefaultSaltLen, "salt length for --ssha output (1-16)")
	seed := flag.Uint32("seed", 0, "seed the legacy generator for reproducible salts (0 = crypto/rand)")
	flag.Parse()

	var src passwd.SaltSource = passwd.NewCryptoSource()
	if *seed != 0 {
		src = passwd.NewLCGSource(*seed)
	}

	for {
		pw, err := readPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := readPassword("Retype password: ")
		if err != nil {
			wipe(pw)
			return err
		}
		match := bytes.Equal(pw, confirm)
		wipe(confirm)
		if !match {
			wipe(pw)
			fmt.Fprintln(os.Stderr, "passwords do not match, try again")
			continue
		}

		err = emit(os.Stdout, src, pw, *ssha, *saltLen)
		wipe(pw)
		return err
	}
}

func emit(w *os.File, src passwd.SaltSource, pw []byte, ssha bool, saltLen int) error {
	if ssha {
		h, err := passwd.NewSSHA1Hasher(passwd.SSHA1Options{SaltLen: saltLen, Source: src})
		if err != nil {
			return err
		}
		enc, err := h.Make(string(pw))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, enc)
		return err
	}

	var salt [passwd.SaltSize]byte
	copy(salt[:], passwd.NewSalt(src, passwd.SaltSize))
	rec := passwd.HashRecord(salt, pw)
	_, err := fmt.Fprintf(w, "%x %x\n", rec.Salt, rec.Digest)
	return err
}

// stdin is shared across prompts so piped input is not lost to buffering.
var stdin = bufio.NewReader(os.Stdin)

// readPassword prompts on stderr and reads with echo disabled when stdin is
// a terminal; otherwise it reads one line, so the tool stays scriptable.
func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		return pw, err
	}
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
