// This tool reports where an advertisement clip occurs inside a target
// recording. Both files must be 16-bit mono wav files.
//
// Each occurrence is printed as a "start,end" pair of inclusive sample
// indices, one per line, with no newline after the last pair.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/track"
	"github.com/cwbudde/track/pcmio"
)

const missingPathMessage = "usage: adfind -ad <clip.wav> <target.wav>"

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

var errMissingPath = errors.New("missing path argument")

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("adfind", flag.ContinueOnError)

	adPath := flagSet.String("ad", "", "wav clip to search for")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *adPath == "" || flagSet.NArg() < 1 {
		return errMissingPath
	}

	target, err := loadTrack(flagSet.Arg(0))
	if err != nil {
		return err
	}

	ad, err := loadTrack(*adPath)
	if err != nil {
		return err
	}

	matches := track.Identify(target, ad)
	if len(matches) == 0 {
		return nil
	}

	_, err = fmt.Fprint(out, matches)

	return err
}

func loadTrack(path string) (*track.Track, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	t, _, err := pcmio.Load(file)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}

	return t, nil
}
