// Command huff compresses and decompresses files with a Huffman code.
//
//	huff [-d] [-i input] [-o output]
//	huff -inspect -i file.huff
//	huff -verify -i file
//
// Input defaults to stdin and output to stdout.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	huffman "github.com/jba/huffpack"
)

var (
	d       = flag.Bool("d", false, "decompress")
	i       = flag.String("i", "", "input file")
	o       = flag.String("o", "", "output file")
	verbose = flag.Bool("v", false, "print the tree and code table to stderr")
	inspect = flag.Bool("inspect", false, "print the header of a compressed input")
	verify  = flag.Bool("verify", false, "compress and decompress the input in memory and compare")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("huff: ")
	flag.Parse()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	in, err := openInput(*i)
	if err != nil {
		return err
	}
	defer in.Close()

	switch {
	case *inspect:
		return doInspect(os.Stdout, in)
	case *verify:
		return doVerify(os.Stdout, in)
	}

	if *verbose && !*d {
		if err := describe(os.Stderr, in); err != nil {
			return err
		}
	}
	return convert(*o, in, *d)
}

// convert compresses in, or decompresses it if decode is set, to the file
// named out (stdout if empty). A partly written file is removed on failure.
func convert(out string, in io.Reader, decode bool) (err error) {
	w, err := createOutput(out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		if err != nil && out != "" {
			os.Remove(out)
		}
	}()
	if decode {
		// Nothing follows the container in a file, so reading ahead is fine.
		return huffman.Decode(w, bufio.NewReader(in))
	}
	return huffman.Encode(w, in)
}

func openInput(name string) (io.ReadSeekCloser, error) {
	if name == "" {
		return os.Stdin, nil
	}
	return os.Open(name)
}

func createOutput(name string) (io.WriteCloser, error) {
	if name == "" {
		return os.Stdout, nil
	}
	return os.Create(name)
}

// describe prints the tree and codes for in and rewinds it.
func describe(w io.Writer, in io.ReadSeeker) error {
	h, err := huffman.CountFrequencies(in)
	if err != nil {
		return err
	}
	if _, err := in.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "-v needs a seekable input")
	}
	hdr, err := huffman.NewHeader(h)
	if err != nil {
		return err
	}
	t, err := hdr.Tree()
	if err != nil {
		return err
	}
	fmt.Fprint(w, t)
	printCodes(w, hdr, huffman.NewCodeTable(t))
	return nil
}

func printCodes(w io.Writer, hdr *huffman.Header, ct *huffman.CodeTable) {
	var bits uint64
	for _, r := range hdr.Records {
		c, _ := ct.Code(r.Value)
		bits += r.Weight * uint64(len(c))
		fmt.Fprintf(w, "%#02x %q weight %d code %s\n", r.Value, r.Value, r.Weight, c)
	}
	fmt.Fprintf(w, "%d symbols, %d bytes, payload %d bits\n", len(hdr.Records), hdr.Size, bits)
}

func doInspect(w io.Writer, in io.Reader) error {
	hdr, err := huffman.ReadHeader(in)
	if err != nil {
		return err
	}
	t, err := hdr.Tree()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "tree depth %d\n", t.Depth())
	printCodes(w, hdr, huffman.NewCodeTable(t))
	return nil
}

func doVerify(w io.Writer, in io.Reader) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	enc, err := huffman.EncodeBytes(data)
	if err != nil {
		return err
	}
	dec, err := huffman.DecodeBytes(enc)
	if err != nil {
		return err
	}
	before, after := xxhash.Sum64(data), xxhash.Sum64(dec)
	fmt.Fprintf(w, "input   %d bytes xxhash %016x\n", len(data), before)
	fmt.Fprintf(w, "encoded %d bytes (%.1f%%)\n", len(enc), 100*float64(len(enc))/float64(len(data)))
	fmt.Fprintf(w, "decoded %d bytes xxhash %016x\n", len(dec), after)
	if before != after || !bytes.Equal(data, dec) {
		return errors.New("round trip mismatch")
	}
	return nil
}
