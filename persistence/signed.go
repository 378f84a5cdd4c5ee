package persistence

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/nullstyle/go-xdr/xdr3"

	"github.com/packio/bitpack"
	"github.com/packio/bitpack/shared"
)

// signedEnvelope wraps a signed block. The data and sign streams are stored
// as nested Write outputs, each guarded by its own digest on top of the
// file-level one.
type signedEnvelope struct {
	Version  uint32
	Strategy uint32
	Min      int32
	Data     []byte
	Signs    []byte
}

// WriteSigned serializes a signed block into w.
func WriteSigned(w io.Writer, sb *bitpack.SignedBlock) error {
	if sb == nil {
		return fmt.Errorf("%w: invalid `block`; expected: a signed block, given: nil", shared.ErrInvalidConfig)
	}
	if err := sb.Validate(); err != nil {
		return err
	}

	var data bytes.Buffer
	if err := Write(&data, sb.Data); err != nil {
		return err
	}
	var signs []byte
	if sb.Signs != nil {
		var buf bytes.Buffer
		if err := Write(&buf, sb.Signs); err != nil {
			return err
		}
		signs = buf.Bytes()
	}

	env := signedEnvelope{
		Version:  signedFileVersion,
		Strategy: uint32(sb.Strategy),
		Min:      sb.Min,
		Data:     data.Bytes(),
		Signs:    signs,
	}
	var body bytes.Buffer
	if _, err := xdr.Marshal(&body, env); err != nil {
		return fmt.Errorf("serialization failure: %v", err)
	}
	return writeDigested(w, body.Bytes())
}

// ReadSigned deserializes a signed block written by WriteSigned.
func ReadSigned(r io.Reader) (*bitpack.SignedBlock, error) {
	body, err := readDigested(r)
	if err != nil {
		return nil, err
	}
	if err := checkVersion(body, signedFileVersion); err != nil {
		return nil, err
	}

	env := &signedEnvelope{}
	if _, err := xdr.Unmarshal(bytes.NewReader(body), env); err != nil {
		return nil, fmt.Errorf("deserialization failure: %v", err)
	}
	return env.signedBlock()
}

// SaveSigned writes a signed block to path, creating missing directories.
func SaveSigned(path string, sb *bitpack.SignedBlock) error {
	var w bytes.Buffer
	if err := WriteSigned(&w, sb); err != nil {
		return err
	}
	return saveFile(path, w.Bytes())
}

// LoadSigned reads a signed block from path.
func LoadSigned(path string) (*bitpack.SignedBlock, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadSigned(bufio.NewReader(f))
}

func (env *signedEnvelope) signedBlock() (*bitpack.SignedBlock, error) {
	if env.Strategy > math.MaxUint8 {
		return nil, shared.IntegrityError{
			Param:    "strategy",
			Expected: fmt.Sprintf("0..%d", math.MaxUint8),
			Given:    fmt.Sprint(env.Strategy),
		}
	}

	sb := &bitpack.SignedBlock{
		Strategy: bitpack.Strategy(env.Strategy),
		Min:      env.Min,
	}
	data, err := Read(bytes.NewReader(env.Data))
	if err != nil {
		return nil, err
	}
	sb.Data = data
	if len(env.Signs) > 0 {
		signs, err := Read(bytes.NewReader(env.Signs))
		if err != nil {
			return nil, err
		}
		sb.Signs = signs
	}
	if err := sb.Validate(); err != nil {
		return nil, err
	}
	return sb, nil
}
