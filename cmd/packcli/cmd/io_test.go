package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadWriteValues(t *testing.T) {
	r := require.New(t)

	path := filepath.Join(t.TempDir(), "values.txt")
	r.NoError(writeValues(path, []uint32{5, 0, 123456, 42}))

	values, err := readValues(path)
	r.NoError(err)
	r.Equal([]uint32{5, 0, 123456, 42}, values)
}

func TestReadValuesSkipsBlankLines(t *testing.T) {
	r := require.New(t)

	path := filepath.Join(t.TempDir(), "values.txt")
	r.NoError(os.WriteFile(path, []byte("1\n\n  \n2\n3\n"), 0o600))

	values, err := readValues(path)
	r.NoError(err)
	r.Equal([]uint32{1, 2, 3}, values)
}

func TestReadValuesReportsBadLine(t *testing.T) {
	r := require.New(t)

	path := filepath.Join(t.TempDir(), "values.txt")
	r.NoError(os.WriteFile(path, []byte("1\n2\nnope\n"), 0o600))

	_, err := readValues(path)
	r.Error(err)
	r.Contains(err.Error(), ":3:")
}

func TestReadWriteSignedValues(t *testing.T) {
	r := require.New(t)

	path := filepath.Join(t.TempDir(), "values.txt")
	r.NoError(writeSignedValues(path, []int32{-3, 0, 5, -1, 2}))

	values, err := readSignedValues(path)
	r.NoError(err)
	r.Equal([]int32{-3, 0, 5, -1, 2}, values)

	// The unsigned reader rejects negative values.
	_, err = readValues(path)
	r.Error(err)
}

func TestReplaceExt(t *testing.T) {
	r := require.New(t)

	r.Equal("data.bpk", replaceExt("data.txt", ".bpk"))
	r.Equal("data.bpk", replaceExt("data", ".bpk"))
	r.Equal(filepath.Join("a", "b.sbpk"), replaceExt(filepath.Join("a", "b.txt"), ".sbpk"))
}
