package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
)

type TracerStat struct {
	// The tracer id.
	Id string

	// The block height in the last pass and the percentage of total frame
	// area it represents.
	BlockH       uint32
	FramePercent float32

	// Accumulated render time for all assigned blocks.
	RenderTime time.Duration

	// Number of ray queries issued by this tracer.
	Rays uint64
}

type FrameStats struct {
	// Individual tracer stats.
	Tracers []TracerStat

	// Number of passes used for the frame.
	Passes uint32

	// Total number of ray queries.
	Rays uint64

	// Total render time for entire frame.
	RenderTime time.Duration
}

// Build a tabular representation of the frame statistics.
func (s FrameStats) String() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tracer", "Block height", "% of frame", "Rays", "Render time"})
	for _, stat := range s.Tracers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%d", stat.BlockH),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			fmt.Sprintf("%d", stat.Rays),
			stat.RenderTime.String(),
		})
	}
	table.SetFooter([]string{"", fmt.Sprintf("%d passes", s.Passes), "TOTAL", fmt.Sprintf("%d", s.Rays), s.RenderTime.String()})

	table.Render()
	return buf.String()
}
