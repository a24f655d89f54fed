package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/mat"

	"github.com/RobertPaulig/SpectralPhysics-Lab/spectrum"
)

// RenderSpectrum writes an HTML line chart of power over frequency.
func RenderSpectrum(path, title string, s *spectrum.Spectrum) error {
	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: title,
	}))

	xAxis := make([]string, s.Len())
	data := make([]opts.LineData, s.Len())
	for i := range s.Omega {
		xAxis[i] = fmt.Sprintf("%.3f", s.Omega[i])
		data[i] = opts.LineData{Value: s.Power[i]}
	}
	line.SetXAxis(xAxis).AddSeries("power", data)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return line.Render(f)
}

// RenderHeatMap writes an HTML heat map of a score or LDOS matrix. Row 0 of
// the matrix renders at the bottom.
func RenderHeatMap(path, title string, m *mat.Dense) error {
	ny, nx := m.Dims()

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        float32(mat.Min(m)),
			Max:        float32(mat.Max(m)),
		}),
	)

	xAxis := make([]string, nx)
	for j := range xAxis {
		xAxis[j] = fmt.Sprintf("%d", j)
	}

	data := make([]opts.HeatMapData, 0, nx*ny)
	for i := 0; i < ny; i++ {
		for j := 0; j < nx; j++ {
			data = append(data, opts.HeatMapData{
				Value: [3]interface{}{j, i, m.At(i, j)},
			})
		}
	}
	hm.SetXAxis(xAxis).AddSeries("ldos", data)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return hm.Render(f)
}
