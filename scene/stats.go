package scene

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
)

// Build a tabular representation of scene statistics.
func (sc *Scene) Stats() string {
	info := sc.Info

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Section", "Item", "Value"})
	table.Append([]string{"Geometry", "---", fmt.Sprintf("%d primitives", info.Primitives)})
	table.Append([]string{"", "Spheres", fmt.Sprintf("%d", info.Spheres)})
	table.Append([]string{"", "Triangles", fmt.Sprintf("%d", info.Triangles)})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Hierarchy", "---", fmtPartitioned(info.Partitioned)})
	table.Append([]string{"", "Volumes", fmt.Sprintf("%d", info.Volumes)})
	table.Append([]string{"", "Jumbles", fmt.Sprintf("%d", info.Jumbles)})
	table.Append([]string{"", "Max depth", fmt.Sprintf("%d", info.MaxDepth)})
	table.Append([]string{"", "Build time", fmt.Sprintf("%d ms", info.BuildTime.Nanoseconds()/1e6)})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Setup", "---", ""})
	table.Append([]string{"", "Eye", fmtVec(sc.Eye.X(), sc.Eye.Y(), sc.Eye.Z())})
	table.Append([]string{"", "Light", fmtVec(sc.Light.X(), sc.Light.Y(), sc.Light.Z())})
	table.Append([]string{"", "Bounds min", fmtVec(info.Bounds.Min.X(), info.Bounds.Min.Y(), info.Bounds.Min.Z())})
	table.Append([]string{"", "Bounds max", fmtVec(info.Bounds.Max.X(), info.Bounds.Max.Y(), info.Bounds.Max.Z())})
	table.SetFooter([]string{"Total", "nodes", fmt.Sprintf("%d", info.Primitives+info.Volumes+info.Jumbles)})

	table.Render()
	return buf.String()
}

func fmtPartitioned(partitioned bool) string {
	if partitioned {
		return "bvh"
	}
	return "flat"
}

func fmtVec(x, y, z float32) string {
	return fmt.Sprintf("(%g, %g, %g)", x, y, z)
}
