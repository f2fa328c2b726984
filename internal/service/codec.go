// Package service wraps the huffman codec for request/response use,
// caching the prefix trees rebuilt while decoding.
package service

import (
	"bytes"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	huffman "github.com/jba/huffpack"
	"github.com/jba/huffpack/internal/logger"
)

// ErrTooLarge is returned when a container would decode to more than the
// service's output limit.
var ErrTooLarge = errors.New("decoded size exceeds limit")

// A CodecService encodes and decodes whole containers held in memory.
// It is safe for concurrent use.
type CodecService struct {
	trees     *lru.Cache[uint64, *huffman.Tree]
	maxOutput int64
	logger    logger.Logger
}

// NewCodecService returns a service that caches up to cacheSize trees and
// refuses to decode containers larger than maxOutput bytes.
func NewCodecService(cacheSize int, maxOutput int64, l logger.Logger) (*CodecService, error) {
	c, err := lru.New[uint64, *huffman.Tree](cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "tree cache")
	}
	return &CodecService{trees: c, maxOutput: maxOutput, logger: l}, nil
}

// Encode returns the container for data.
func (s *CodecService) Encode(data []byte) ([]byte, error) {
	out, err := huffman.EncodeBytes(data)
	if err != nil {
		return nil, err
	}
	s.logger.Infof("encoded %d bytes into %d", len(data), len(out))
	return out, nil
}

// Decode returns the original bytes of container.
// It fails with ErrTooLarge if the header declares more than the
// service's output limit.
func (s *CodecService) Decode(container []byte) ([]byte, error) {
	r := bytes.NewReader(container)
	hdr, err := huffman.ReadHeader(r)
	if err != nil {
		return nil, err
	}
	if hdr.Size > uint64(s.maxOutput) {
		return nil, errors.Wrapf(ErrTooLarge, "%d bytes", hdr.Size)
	}
	t, err := s.tree(hdr)
	if err != nil {
		return nil, err
	}
	// Every decoded byte takes at least one payload bit.
	var out bytes.Buffer
	out.Grow(int(min(hdr.Size, 8*uint64(r.Len()))))
	if err := huffman.DecodePayload(&out, r, t, hdr.Size); err != nil {
		return nil, err
	}
	s.logger.Infof("decoded %d bytes into %d", len(container), out.Len())
	return out.Bytes(), nil
}

// tree returns the prefix tree for hdr, from the cache if an
// identical table was seen before.
func (s *CodecService) tree(hdr *huffman.Header) (*huffman.Tree, error) {
	key := tableKey(hdr.Records)
	if t, ok := s.trees.Get(key); ok {
		return t, nil
	}
	t, err := hdr.Tree()
	if err != nil {
		return nil, err
	}
	s.trees.Add(key, t)
	return t, nil
}

// tableKey hashes the records in container order. Containers written by
// this package list records by value.
func tableKey(recs []huffman.Record) uint64 {
	d := xxhash.New()
	var buf [9]byte
	for _, r := range recs {
		buf[0] = r.Value
		binary.BigEndian.PutUint64(buf[1:], r.Weight)
		d.Write(buf[:])
	}
	return d.Sum64()
}

// CachedTrees returns the number of trees in the cache.
func (s *CodecService) CachedTrees() int { return s.trees.Len() }

// An Inspection describes a container's header.
type Inspection struct {
	Size    uint64          `json:"size"`
	Symbols int             `json:"symbols"`
	Depth   int             `json:"depth"`
	Records []InspectRecord `json:"records"`
}

// An InspectRecord is one table record and the code derived for it.
type InspectRecord struct {
	Value  byte   `json:"value"`
	Weight uint64 `json:"weight"`
	Code   string `json:"code"`
}

// Inspect describes the header of a container and the codes it implies.
// The payload is not read.
func (s *CodecService) Inspect(container []byte) (*Inspection, error) {
	hdr, err := huffman.ReadHeader(bytes.NewReader(container))
	if err != nil {
		return nil, err
	}
	t, err := s.tree(hdr)
	if err != nil {
		return nil, err
	}
	ct := huffman.NewCodeTable(t)
	in := &Inspection{Size: hdr.Size, Symbols: len(hdr.Records), Depth: t.Depth()}
	for _, r := range hdr.Records {
		c, _ := ct.Code(r.Value)
		in.Records = append(in.Records, InspectRecord{Value: r.Value, Weight: r.Weight, Code: c.String()})
	}
	return in, nil
}
