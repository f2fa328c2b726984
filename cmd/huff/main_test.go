package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	huffman "github.com/jba/huffpack"
)

func TestVerify(t *testing.T) {
	var out bytes.Buffer
	if err := doVerify(&out, strings.NewReader("a man a plan a canal panama")); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "decoded 27 bytes") {
		t.Errorf("got %q", out.String())
	}
	if err := doVerify(&out, strings.NewReader("")); err != huffman.ErrEmptyInput {
		t.Errorf("got %v, want ErrEmptyInput", err)
	}
}

func TestInspect(t *testing.T) {
	enc, err := huffman.EncodeBytes([]byte("aab"))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := doInspect(&out, bytes.NewReader(enc)); err != nil {
		t.Fatal(err)
	}
	want := "tree depth 1\n" +
		"0x61 'a' weight 2 code 1\n" +
		"0x62 'b' weight 1 code 0\n" +
		"2 symbols, 3 bytes, payload 3 bits\n"
	if got := out.String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	packed := filepath.Join(dir, "in.huff")
	if err := convert(packed, strings.NewReader("abracadabra"), false); err != nil {
		t.Fatal(err)
	}
	unpacked := filepath.Join(dir, "out.txt")
	f, err := os.Open(packed)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := convert(unpacked, f, true); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(unpacked)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "abracadabra" {
		t.Errorf("got %q", got)
	}

	// A failed conversion leaves no output behind.
	bad := filepath.Join(dir, "bad.txt")
	if err := convert(bad, bytes.NewReader([]byte{1, 'x', 0}), true); !errors.Is(err, huffman.ErrMalformedContainer) {
		t.Fatalf("got %v, want ErrMalformedContainer", err)
	}
	if _, err := os.Stat(bad); !os.IsNotExist(err) {
		t.Errorf("%s still exists: %v", bad, err)
	}
	if err := convert(bad, strings.NewReader(""), false); !errors.Is(err, huffman.ErrEmptyInput) {
		t.Fatalf("got %v, want ErrEmptyInput", err)
	}
	if _, err := os.Stat(bad); !os.IsNotExist(err) {
		t.Errorf("%s still exists after empty input: %v", bad, err)
	}
}

func TestDescribe(t *testing.T) {
	in := strings.NewReader("aab")
	var out bytes.Buffer
	if err := describe(&out, in); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "node weight 3\n") {
		t.Errorf("got %q", out.String())
	}
	// The input is rewound for encoding.
	if in.Len() != 3 {
		t.Errorf("input not rewound: %d bytes left", in.Len())
	}
}
