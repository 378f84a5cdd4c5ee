package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/packio/bitpack/persistence"
)

// readValues reads one non-negative integer per line. Blank lines are
// skipped.
func readValues(path string) ([]uint32, error) {
	var values []uint32
	err := scanLines(path, func(line int, text string) error {
		v, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			return fmt.Errorf("%s:%d: parsing %q: %w", path, line, text, err)
		}
		values = append(values, uint32(v))
		return nil
	})
	return values, err
}

// readSignedValues reads one integer per line, negative values allowed.
func readSignedValues(path string) ([]int32, error) {
	var values []int32
	err := scanLines(path, func(line int, text string) error {
		v, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return fmt.Errorf("%s:%d: parsing %q: %w", path, line, text, err)
		}
		values = append(values, int32(v))
		return nil
	})
	return values, err
}

func scanLines(path string, handle func(line int, text string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	line := 0
	for s.Scan() {
		line++
		text := strings.TrimSpace(s.Text())
		if text == "" {
			continue
		}
		if err := handle(line, text); err != nil {
			return err
		}
	}
	return s.Err()
}

func writeValues(path string, values []uint32) error {
	return writeLines(path, len(values), func(i int) string {
		return strconv.FormatUint(uint64(values[i]), 10)
	})
}

func writeSignedValues(path string, values []int32) error {
	return writeLines(path, len(values), func(i int) string {
		return strconv.FormatInt(int64(values[i]), 10)
	})
}

func writeLines(path string, n int, line func(i int) string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, persistence.OwnerReadWrite)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	for i := 0; i < n; i++ {
		if _, err := fmt.Fprintln(w, line(i)); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
