// Package persistence stores compressed blocks on disk. A stored block is a
// sha256 digest followed by an XDR-encoded envelope; the digest is verified
// before any field of the envelope is trusted, so bit rot and truncation
// surface as integrity errors rather than misdecodes.
package persistence

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/bytefmt"
	"github.com/nullstyle/go-xdr/xdr3"
	"github.com/spacemeshos/sha256-simd"

	"github.com/packio/bitpack"
	"github.com/packio/bitpack/shared"
)

// OwnerReadWriteExec is a standard owner read / write / exec file permission.
const OwnerReadWriteExec = 0700

// OwnerReadWrite is a standard owner read / write file permission.
const OwnerReadWrite = 0600

// ErrFileMissing is returned by Load and LoadSigned for a path that does
// not exist.
var ErrFileMissing = errors.New("block file missing")

const (
	blockFileVersion  = 1
	signedFileVersion = 2

	digestSize = sha256.Size
)

// envelope is the on-disk form of a block. Field widths are XDR-native;
// narrow header fields are range-checked on the way back in.
type envelope struct {
	Version   uint32
	Variant   uint32
	Count     uint64
	BitWidth  uint32
	FlagWidth uint32
	Constant  uint32
	Words     []uint32
	Overflow  []uint32
}

// Write serializes a block into w as a digest-guarded envelope.
func Write(w io.Writer, b *bitpack.Block) error {
	if b == nil {
		return fmt.Errorf("%w: invalid `block`; expected: a block, given: nil", shared.ErrInvalidConfig)
	}
	if err := b.Validate(); err != nil {
		return err
	}

	env := envelope{
		Version:   blockFileVersion,
		Variant:   uint32(b.Variant),
		Count:     b.Count,
		BitWidth:  uint32(b.BitWidth),
		FlagWidth: uint32(b.FlagWidth),
		Constant:  b.Constant,
		Words:     b.Words,
		Overflow:  b.OverflowValues,
	}
	var body bytes.Buffer
	if _, err := xdr.Marshal(&body, env); err != nil {
		return fmt.Errorf("serialization failure: %v", err)
	}
	return writeDigested(w, body.Bytes())
}

// Read deserializes a block written by Write, verifying the digest and the
// envelope shape before returning it.
func Read(r io.Reader) (*bitpack.Block, error) {
	body, err := readDigested(r)
	if err != nil {
		return nil, err
	}
	if err := checkVersion(body, blockFileVersion); err != nil {
		return nil, err
	}

	env := &envelope{}
	if _, err := xdr.Unmarshal(bytes.NewReader(body), env); err != nil {
		return nil, fmt.Errorf("deserialization failure: %v", err)
	}
	return env.block()
}

// Save writes a block to path, creating missing directories. The write is
// refused when the target filesystem lacks the space for it.
func Save(path string, b *bitpack.Block) error {
	var w bytes.Buffer
	if err := Write(&w, b); err != nil {
		return err
	}
	return saveFile(path, w.Bytes())
}

// Load reads a block from path.
func Load(path string) (*bitpack.Block, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(bufio.NewReader(f))
}

func (env *envelope) block() (*bitpack.Block, error) {
	for _, field := range []struct {
		name  string
		value uint32
	}{
		{"variant", env.Variant},
		{"bitWidth", env.BitWidth},
		{"flagWidth", env.FlagWidth},
	} {
		if field.value > math.MaxUint8 {
			return nil, shared.IntegrityError{
				Param:    field.name,
				Expected: fmt.Sprintf("0..%d", math.MaxUint8),
				Given:    fmt.Sprint(field.value),
			}
		}
	}

	b := &bitpack.Block{
		Variant:        bitpack.Variant(env.Variant),
		Count:          env.Count,
		BitWidth:       uint8(env.BitWidth),
		Constant:       env.Constant,
		FlagWidth:      uint8(env.FlagWidth),
		Words:          env.Words,
		OverflowValues: env.Overflow,
	}
	// XDR decodes empty arrays to empty slices; blocks carry nil instead.
	if len(b.Words) == 0 {
		b.Words = nil
	}
	if len(b.OverflowValues) == 0 {
		b.OverflowValues = nil
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// checkVersion decodes the leading version field of a stored body. The
// version is always the first field, so wrong-kind and future-format files
// are rejected before the rest of the envelope is decoded.
func checkVersion(body []byte, want uint32) error {
	var version uint32
	if _, err := xdr.Unmarshal(bytes.NewReader(body), &version); err != nil {
		return fmt.Errorf("deserialization failure: %v", err)
	}
	if version != want {
		return shared.IntegrityError{
			Param:    "version",
			Expected: fmt.Sprint(want),
			Given:    fmt.Sprint(version),
		}
	}
	return nil
}

func writeDigested(w io.Writer, body []byte) error {
	digest := sha256.Sum256(body)
	if _, err := w.Write(digest[:]); err != nil {
		return fmt.Errorf("write failure: %v", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write failure: %v", err)
	}
	return nil
}

func readDigested(r io.Reader) ([]byte, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read failure: %v", err)
	}
	if len(data) < digestSize {
		return nil, shared.IntegrityError{
			Param:    "file",
			Expected: fmt.Sprintf("at least %d bytes", digestSize),
			Given:    fmt.Sprint(len(data)),
		}
	}
	body := data[digestSize:]
	digest := sha256.Sum256(body)
	if !bytes.Equal(digest[:], data[:digestSize]) {
		return nil, shared.IntegrityError{
			Param:    "digest",
			Expected: hex.EncodeToString(digest[:]),
			Given:    hex.EncodeToString(data[:digestSize]),
		}
	}
	return body, nil
}

func saveFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, OwnerReadWriteExec); err != nil && !os.IsExist(err) {
		return fmt.Errorf("dir creation failure: %v", err)
	}

	required := uint64(len(data))
	if available := AvailableSpace(dir); required > available {
		return fmt.Errorf("not enough disk space. required: %v, available: %v",
			bytefmt.ByteSize(required), bytefmt.ByteSize(available))
	}

	if err := ioutil.WriteFile(path, data, OwnerReadWrite); err != nil {
		return fmt.Errorf("write to disk failure: %v", err)
	}
	return nil
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileMissing
		}
		return nil, fmt.Errorf("read file failure: %v", err)
	}
	return f, nil
}
