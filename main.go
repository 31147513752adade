package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/solstice-render/pathtrace/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "pathtrace"
	app.Usage = "render scenes using Monte-Carlo path tracing"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:        "scene",
			Usage:       "parse a scene file and print summary information",
			Description: `Parse a scene definition and report its object counts and BVH status without rendering it.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file",
					Usage: "scene file to load",
				},
			},
			Action: cmd.ShowSceneInfo,
		},
		{
			Name:   "render",
			Usage:  "render scene",
			Action: nil,
			Subcommands: []cli.Command{
				{
					Name:        "frame",
					Usage:       "render a single still frame",
					Description: `Render a single frame and write it out as a PNG.`,
					Flags: []cli.Flag{
						cli.StringFlag{
							Name:  "file",
							Usage: "scene file to render",
						},
						cli.IntFlag{
							Name:  "width",
							Value: 512,
							Usage: "frame width",
						},
						cli.IntFlag{
							Name:  "height",
							Value: 512,
							Usage: "frame height",
						},
						cli.IntFlag{
							Name:  "spp",
							Value: 16,
							Usage: "samples per pixel",
						},
						cli.BoolFlag{
							Name:  "fast",
							Usage: "cap recursion depth for a quick preview render",
						},
						cli.IntFlag{
							Name:  "workers",
							Value: 0,
							Usage: "worker goroutine count (0 means GOMAXPROCS)",
						},
						cli.IntFlag{
							Name:  "seed",
							Value: 1,
							Usage: "base RNG seed",
						},
						cli.StringFlag{
							Name:  "out, o",
							Value: "frame.png",
							Usage: "image filename for the rendered frame",
						},
					},
					Action: cmd.RenderFrame,
				},
			},
		},
	}

	app.Run(cmd.NormalizeArgs(os.Args))
}
