package scene

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
)

// Build a tabular representation of the registry contents.
func (r *Registry) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Count"})
	table.Append([]string{"Objects", fmt.Sprintf("%d", len(r.objects))})
	table.Append([]string{"Materials", fmt.Sprintf("%d", len(r.materials))})
	table.Append([]string{"Textures", fmt.Sprintf("%d", len(r.textures))})

	bg := r.Background
	table.SetFooter([]string{"Background", fmt.Sprintf("(%1.2f, %1.2f, %1.2f)", bg[0], bg[1], bg[2])})

	table.Render()
	return buf.String()
}
