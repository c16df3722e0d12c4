package main

import (
	"fmt"
	"io"

	"github.com/docker/go-units"
	"github.com/olekukonko/tablewriter"

	"github.com/gogpu/d3/renderer"
)

// listDevices prints the adapters of backend as a table.
func listDevices(w io.Writer, backend renderer.InstanceFactory) error {
	adapters, err := renderer.ListAdapters(backend)
	if err != nil {
		return err
	}
	if len(adapters) == 0 {
		_, err := fmt.Fprintln(w, "no GPU adapters found")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Name", "Type", "Backend", "Vendor", "Driver", "Max texture 2D", "Max buffer"})
	for i, a := range adapters {
		table.Append([]string{
			fmt.Sprint(i),
			a.Name,
			fmt.Sprint(a.DeviceType),
			fmt.Sprint(a.Backend),
			a.Vendor,
			a.Driver,
			fmt.Sprint(a.MaxTextureDimension2D),
			units.BytesSize(float64(a.MaxBufferSize)),
		})
	}
	table.Render()
	return nil
}
