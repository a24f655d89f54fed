package main

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/RobertPaulig/SpectralPhysics-Lab/config"
	"github.com/RobertPaulig/SpectralPhysics-Lab/diagnostics"
	"github.com/RobertPaulig/SpectralPhysics-Lab/medium"
	"github.com/RobertPaulig/SpectralPhysics-Lab/ndt"
	"github.com/RobertPaulig/SpectralPhysics-Lab/report"
	"github.com/RobertPaulig/SpectralPhysics-Lab/spectrum"
	"github.com/RobertPaulig/SpectralPhysics-Lab/storage"
)

func main() {
	var (
		signalPath  string
		refPath     string
		outPath     string
		configPath  string
		gridName    string
		column      int
		dt          float64
		threshold   float64
		freqMin     float64
		freqMax     float64
		window      string
		nNodes      int
		coupling    float64
		nodeMass    float64
		defectRow   int
		defectCol   int
		defectMass  float64
		heatMapPath string
	)

	app := &cli.App{
		Name:                 "speclab",
		Usage:                "Oscillator-network spectral diagnostics",
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "Convert a CSV time series into a spectrum archive",
				Action: func(cCtx *cli.Context) error {
					signal, err := storage.LoadTimeSeriesCSV(signalPath, column, true)
					if err != nil {
						return cli.Exit(err, 2)
					}
					log.WithFields(log.Fields{"file": signalPath, "samples": len(signal)}).
						Info("signal loaded")

					analyzer, err := diagnostics.NewSpectralAnalyzer(channelConfig(dt, window, freqMin, freqMax))
					if err != nil {
						return cli.Exit(err, 2)
					}
					s, err := analyzer.Analyze(signal)
					if err != nil {
						return cli.Exit(err, 2)
					}
					if err := storage.SaveSpectrum(outPath, s); err != nil {
						return cli.Exit(err, 2)
					}
					log.WithFields(log.Fields{"points": s.Len(), "out": outPath}).
						Info("spectrum written")
					return nil
				},
				Flags: []cli.Flag{
					signalFlag(&signalPath), columnFlag(&column), dtFlag(&dt),
					windowFlag(&window), freqMinFlag(&freqMin), freqMaxFlag(&freqMax),
					outFlag(&outPath, "spectrum archive to write"),
				},
			},
			{
				Name:  "diagnose",
				Usage: "Score a signal against a reference spectrum",
				Action: func(cCtx *cli.Context) error {
					signal, err := storage.LoadTimeSeriesCSV(signalPath, column, true)
					if err != nil {
						return cli.Exit(err, 2)
					}
					analyzer, err := diagnostics.NewSpectralAnalyzer(channelConfig(dt, window, freqMin, freqMax))
					if err != nil {
						return cli.Exit(err, 2)
					}
					current, err := analyzer.Analyze(signal)
					if err != nil {
						return cli.Exit(err, 2)
					}

					reference, err := storage.LoadSpectrum(refPath)
					if err != nil {
						return cli.Exit(err, 2)
					}

					monitor := diagnostics.NewHealthMonitor(reference, threshold)
					score, err := monitor.Score(current)
					if err != nil {
						return cli.Exit(err, 2)
					}

					status := "OK"
					anomalous := score > threshold
					if anomalous {
						status = "ANOMALY"
					}
					fmt.Printf("Status: %s\n", status)
					fmt.Printf("Score (L2 distance): %.6f\n", score)
					fmt.Printf("Threshold: %.6f\n", threshold)

					if anomalous {
						return cli.Exit("", 1)
					}
					return nil
				},
				Flags: []cli.Flag{
					signalFlag(&signalPath), columnFlag(&column), dtFlag(&dt),
					windowFlag(&window), freqMinFlag(&freqMin), freqMaxFlag(&freqMax),
					&cli.StringFlag{
						Name:        "ref",
						Usage:       "Reference spectrum archive",
						Destination: &refPath,
						Required:    true,
					},
					&cli.Float64Flag{
						Name:        "threshold",
						Usage:       "Anomaly threshold on the L2 distance",
						Destination: &threshold,
						Required:    true,
					},
				},
			},
			{
				Name:  "train",
				Usage: "Build a multi-channel health profile from configured training files",
				Action: func(cCtx *cli.Context) error {
					cfg, err := config.Load(configPath)
					if err != nil {
						return cli.Exit(err, 2)
					}

					training := make(map[string][]*spectrum.Spectrum)
					for name, ch := range cfg.Channels {
						analyzer, err := diagnostics.NewSpectralAnalyzer(ch.ChannelConfig(name))
						if err != nil {
							return cli.Exit(err, 2)
						}
						for _, file := range ch.Files {
							signal, err := storage.LoadTimeSeriesCSV(file, ch.Column, true)
							if err != nil {
								return cli.Exit(err, 2)
							}
							s, err := analyzer.Analyze(signal)
							if err != nil {
								return cli.Exit(err, 2)
							}
							training[name] = append(training[name], s)
						}
						log.WithFields(log.Fields{"channel": name, "runs": len(training[name])}).
							Info("channel trained")
					}

					profile, err := diagnostics.BuildHealthProfile(training)
					if err != nil {
						return cli.Exit(err, 2)
					}
					if err := storage.SaveHealthProfile(outPath, profile); err != nil {
						return cli.Exit(err, 2)
					}
					log.WithField("out", outPath).Info("health profile written")
					return nil
				},
				Flags: []cli.Flag{
					configFlag(&configPath),
					outFlag(&outPath, "health profile archive to write"),
				},
			},
			{
				Name:  "report",
				Usage: "Score configured channels against a health profile and write a Markdown report",
				Action: func(cCtx *cli.Context) error {
					cfg, err := config.Load(configPath)
					if err != nil {
						return cli.Exit(err, 2)
					}
					profile, err := storage.LoadHealthProfile(refPath)
					if err != nil {
						return cli.Exit(err, 2)
					}

					current := make(map[string]*spectrum.Spectrum)
					thresholds := make(map[string]float64)
					for name, ch := range cfg.Channels {
						analyzer, err := diagnostics.NewSpectralAnalyzer(ch.ChannelConfig(name))
						if err != nil {
							return cli.Exit(err, 2)
						}
						var spectra []*spectrum.Spectrum
						for _, file := range ch.Files {
							signal, err := storage.LoadTimeSeriesCSV(file, ch.Column, true)
							if err != nil {
								return cli.Exit(err, 2)
							}
							s, err := analyzer.Analyze(signal)
							if err != nil {
								return cli.Exit(err, 2)
							}
							spectra = append(spectra, s)
						}
						if len(spectra) == 0 {
							continue
						}
						avg, err := diagnostics.AverageSpectrum(spectra)
						if err != nil {
							return cli.Exit(err, 2)
						}
						current[name] = avg
						thresholds[name] = ch.Threshold
					}

					scores, err := profile.Score(current)
					if err != nil {
						return cli.Exit(err, 2)
					}
					if err := report.WriteMarkdown(outPath, "Spectral Health Report", scores, thresholds, time.Now()); err != nil {
						return cli.Exit(err, 2)
					}
					log.WithField("out", outPath).Info("report written")

					for name, score := range scores {
						if score > thresholds[name] {
							return cli.Exit("", 1)
						}
					}
					return nil
				},
				Flags: []cli.Flag{
					configFlag(&configPath),
					&cli.StringFlag{
						Name:        "profile",
						Usage:       "Health profile archive",
						Destination: &refPath,
						Required:    true,
					},
					outFlag(&outPath, "Markdown report to write"),
				},
			},
			{
				Name:  "modes",
				Usage: "Print the eigenfrequencies of a uniform oscillator chain",
				Action: func(cCtx *cli.Context) error {
					chain, err := medium.NewChain(nNodes,
						medium.WithCoupling(coupling),
						medium.WithMass(nodeMass),
					)
					if err != nil {
						return cli.Exit(err, 2)
					}
					omegas, _ := chain.Eigenmodes()
					for i, w := range omegas {
						fmt.Printf("mode %3d: omega = %.6f\n", i, w)
					}
					return nil
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:        "n",
						Usage:       "Number of nodes",
						Destination: &nNodes,
						Required:    true,
					},
					&cli.Float64Flag{
						Name:        "k",
						Usage:       "Spring stiffness",
						Destination: &coupling,
						Value:       1,
					},
					&cli.Float64Flag{
						Name:        "m",
						Usage:       "Node mass",
						Destination: &nodeMass,
						Value:       1,
					},
				},
			},
			{
				Name:  "ndt",
				Usage: "Build an NDT baseline profile for a configured grid",
				Action: func(cCtx *cli.Context) error {
					cfg, err := config.Load(configPath)
					if err != nil {
						return cli.Exit(err, 2)
					}
					spec, ok := cfg.Grids[gridName]
					if !ok {
						return cli.Exit(fmt.Sprintf("grid %q not in %s", gridName, configPath), 2)
					}

					grid, err := medium.NewGrid(spec.Nx, spec.Ny,
						medium.WithGridCoupling(spec.Kx, spec.Ky),
						medium.WithNodeMass(spec.Mass),
					)
					if err != nil {
						return cli.Exit(err, 2)
					}

					var baselineOpts []ndt.Option
					if spec.NumSamples > 0 {
						baselineOpts = append(baselineOpts, ndt.WithSamples(spec.NumSamples))
					}
					if spec.NoiseLevel > 0 {
						baselineOpts = append(baselineOpts, ndt.WithMassNoise(spec.NoiseLevel))
					}
					if spec.Seed != 0 {
						baselineOpts = append(baselineOpts, ndt.WithSeed(spec.Seed))
					}

					profile, err := ndt.BuildProfile(grid, spec.NumModes, spec.Band(), baselineOpts...)
					if err != nil {
						return cli.Exit(err, 2)
					}
					if err := storage.SaveNDTProfile(outPath, profile); err != nil {
						return cli.Exit(err, 2)
					}
					log.WithFields(log.Fields{"grid": gridName, "out": outPath}).
						Info("ndt baseline written")
					return nil
				},
				Flags: []cli.Flag{
					configFlag(&configPath),
					&cli.StringFlag{
						Name:        "grid",
						Usage:       "Grid name from the configuration",
						Destination: &gridName,
						Required:    true,
					},
					outFlag(&outPath, "NDT baseline archive to write"),
				},
			},
			{
				Name:  "scan",
				Usage: "Score a grid against an NDT baseline and report the defect mask",
				Action: func(cCtx *cli.Context) error {
					cfg, err := config.Load(configPath)
					if err != nil {
						return cli.Exit(err, 2)
					}
					spec, ok := cfg.Grids[gridName]
					if !ok {
						return cli.Exit(fmt.Sprintf("grid %q not in %s", gridName, configPath), 2)
					}
					profile, err := storage.LoadNDTProfile(refPath)
					if err != nil {
						return cli.Exit(err, 2)
					}

					grid, err := medium.NewGrid(spec.Nx, spec.Ny,
						medium.WithGridCoupling(spec.Kx, spec.Ky),
						medium.WithNodeMass(spec.Mass),
					)
					if err != nil {
						return cli.Exit(err, 2)
					}
					if defectMass > 0 {
						masses := grid.MassMap()
						masses.Set(defectRow, defectCol, defectMass)
						grid, err = grid.ReplaceMass(masses)
						if err != nil {
							return cli.Exit(err, 2)
						}
						log.WithFields(log.Fields{
							"row": defectRow, "col": defectCol, "mass": defectMass,
						}).Info("synthetic defect injected")
					}

					current, err := grid.LDOSMap(spec.NumModes, profile.Band)
					if err != nil {
						return cli.Exit(err, 2)
					}
					scores, err := ndt.ScoreState(profile, current, ndt.DefaultEpsilon)
					if err != nil {
						return cli.Exit(err, 2)
					}

					if heatMapPath != "" {
						if err := report.RenderHeatMap(heatMapPath, "NDT defect scores", scores); err != nil {
							return cli.Exit(err, 2)
						}
						log.WithField("out", heatMapPath).Info("score heat map written")
					}

					mask := ndt.DefectMask(scores, spec.Threshold)
					defects := 0
					for i := range mask {
						for j := range mask[i] {
							if mask[i][j] {
								defects++
								fmt.Printf("defect at (%d, %d): score %.4f\n", i, j, scores.At(i, j))
							}
						}
					}
					fmt.Printf("Flagged nodes: %d of %d (threshold %.4f)\n",
						defects, spec.Nx*spec.Ny, spec.Threshold)

					if defects > 0 {
						return cli.Exit("", 1)
					}
					return nil
				},
				Flags: []cli.Flag{
					configFlag(&configPath),
					&cli.StringFlag{
						Name:        "grid",
						Usage:       "Grid name from the configuration",
						Destination: &gridName,
						Required:    true,
					},
					&cli.StringFlag{
						Name:        "profile",
						Usage:       "NDT baseline archive",
						Destination: &refPath,
						Required:    true,
					},
					&cli.IntFlag{
						Name:        "defect-row",
						Usage:       "Row of a synthetic defect node",
						Destination: &defectRow,
					},
					&cli.IntFlag{
						Name:        "defect-col",
						Usage:       "Column of a synthetic defect node",
						Destination: &defectCol,
					},
					&cli.Float64Flag{
						Name:        "defect-mass",
						Usage:       "Replacement mass of the defect node, 0 disables",
						Destination: &defectMass,
					},
					&cli.StringFlag{
						Name:        "heatmap",
						Usage:       "Optional HTML heat map of the score matrix",
						Destination: &heatMapPath,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func channelConfig(dt float64, window string, freqMin, freqMax float64) diagnostics.ChannelConfig {
	w := diagnostics.WindowHann
	if window == "none" {
		w = diagnostics.WindowNone
	}
	return diagnostics.ChannelConfig{
		Name:    "channel-0",
		Dt:      dt,
		Window:  w,
		FreqMin: freqMin,
		FreqMax: freqMax,
	}
}

func signalFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "signal",
		Aliases:     []string{"s"},
		Usage:       "CSV file with the time series",
		Destination: dst,
		Required:    true,
	}
}

func columnFlag(dst *int) cli.Flag {
	return &cli.IntFlag{
		Name:        "column",
		Aliases:     []string{"c"},
		Usage:       "Signal column in the CSV",
		Destination: dst,
	}
}

func dtFlag(dst *float64) cli.Flag {
	return &cli.Float64Flag{
		Name:        "dt",
		Usage:       "Sampling step in seconds",
		Destination: dst,
		Required:    true,
	}
}

func windowFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "window",
		Usage:       "FFT window, hann or none",
		Destination: dst,
		Value:       "hann",
	}
}

func freqMinFlag(dst *float64) cli.Flag {
	return &cli.Float64Flag{
		Name:        "freq-min",
		Usage:       "Lower analysis frequency in Hz, 0 disables",
		Destination: dst,
	}
}

func freqMaxFlag(dst *float64) cli.Flag {
	return &cli.Float64Flag{
		Name:        "freq-max",
		Usage:       "Upper analysis frequency in Hz, 0 disables",
		Destination: dst,
	}
}

func configFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "config",
		Usage:       "YAML configuration file",
		Destination: dst,
		Required:    true,
	}
}

func outFlag(dst *string, usage string) cli.Flag {
	return &cli.StringFlag{
		Name:        "out",
		Aliases:     []string{"o"},
		Usage:       usage,
		Destination: dst,
		Required:    true,
	}
}
