// Command javaserial decodes a Java-serialized object from a file and
// prints it as JSON. It is a thin demonstration shell around the decoder
// package, not part of the decoder's contract.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anthropics/javaserial/decoder"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	maxBlockSize := flag.Int("max-block-size", 0, "cap in bytes on any single length-prefixed read (0 = decoder default)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: javaserial <path-to-serialized-object>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("opening input file")
		os.Exit(1)
	}
	defer f.Close()

	d := decoder.New(f)
	if *maxBlockSize > 0 {
		d.SetMaxBlockSize(*maxBlockSize)
	}

	value, err := d.Decode()
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("decoding java object")
		os.Exit(1)
	}

	out, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Msg("marshalling decoded value to JSON")
		os.Exit(1)
	}

	fmt.Println(string(out))
}
