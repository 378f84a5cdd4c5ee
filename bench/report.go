package bench

import (
	"fmt"
	"io"
	"math"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/olekukonko/tablewriter"
)

// Report renders results as a table, one row per measurement, with a
// break-even column per link speed.
func Report(w io.Writer, results []*Result, linkMBps []float64) {
	header := []string{"dataset", "variant", "raw", "packed", "ratio", "compress", "decompress", "get"}
	for _, mbps := range linkMBps {
		header = append(header, fmt.Sprintf("thresh@%gMB/s", mbps))
	}

	data := make([][]string, 0, len(results))
	for _, r := range results {
		row := []string{
			r.Dataset,
			r.Variant.String(),
			bytefmt.ByteSize(r.RawBytes),
			bytefmt.ByteSize(r.PackedBytes),
			formatRatio(r.Ratio),
			r.Compress.Round(time.Microsecond).String(),
			r.Decompress.Round(time.Microsecond).String(),
			r.Get.String(),
		}
		for _, mbps := range linkMBps {
			row = append(row, formatThreshold(r, mbps*bytefmt.MEGABYTE))
		}
		data = append(data, row)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(true)
	table.AppendBulk(data)
	table.Render()
}

func formatRatio(ratio float64) string {
	if math.IsInf(ratio, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.2fx", ratio)
}

func formatThreshold(r *Result, bytesPerSec float64) string {
	threshold, ok := TransmissionThreshold(r, bytesPerSec)
	if !ok {
		return "never"
	}
	return fmt.Sprintf("%.2f", threshold)
}
