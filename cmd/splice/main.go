// This tool splices a range of one wav recording into another without
// copying samples, optionally cuts a range out of the result, and writes it
// as a wav or aiff file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cwbudde/track"
	"github.com/cwbudde/track/pcmio"
)

var (
	errMissingPath = errors.New("-dst and -out are required")
	errFormat      = errors.New("unknown output format")
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("splice", flag.ContinueOnError)

	dstPath := flagSet.String("dst", "", "wav file to splice into")
	srcPath := flagSet.String("src", "", "wav file to take samples from (defaults to -dst)")
	output := flagSet.String("out", "", "filename to write to")
	format := flagSet.String("format", "wav", "output format: wav or aiff")
	at := flagSet.Int("at", 0, "destination sample index to insert before")
	from := flagSet.Int("from", 0, "first source sample to insert")
	length := flagSet.Int("len", 0, "number of samples to insert")
	cutAt := flagSet.Int("cut-at", 0, "first sample of the range to remove after splicing")
	cutLen := flagSet.Int("cut-len", 0, "number of samples to remove after splicing")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *dstPath == "" || *output == "" {
		return errMissingPath
	}

	if *format != "wav" && *format != "aiff" {
		return fmt.Errorf("%w: %s", errFormat, *format)
	}

	dst, rate, err := loadTrack(*dstPath)
	if err != nil {
		return err
	}

	src := dst
	if *srcPath != "" && *srcPath != *dstPath {
		src, _, err = loadTrack(*srcPath)
		if err != nil {
			return err
		}
	}

	n, err := dst.Insert(*at, src, *from, *length)
	if err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}

	log.Printf("spliced %d samples at %d", n, *at)

	if *cutLen > 0 {
		err := dst.DeleteRange(*cutAt, *cutLen)
		if err != nil {
			return fmt.Errorf("cut failed: %w", err)
		}

		log.Printf("cut up to %d samples at %d", *cutLen, *cutAt)
	}

	file, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", *output, err)
	}
	defer file.Close()

	var sw pcmio.SampleWriter = pcmio.NewEncoder(file, rate)
	if *format == "aiff" {
		sw = pcmio.NewAIFFEncoder(file, rate)
	}

	return pcmio.Export(sw, dst, rate)
}

func loadTrack(path string) (*track.Track, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	t, rate, err := pcmio.Load(file)
	if err != nil {
		return nil, 0, fmt.Errorf("error loading %s: %w", path, err)
	}

	return t, rate, nil
}
