package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/bvhtrace/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	seedFlag := cli.Int64Flag{
		Name:  "seed",
		Value: 1,
		Usage: "seed for random scene content and sampling",
	}
	textureFlag := cli.StringFlag{
		Name:  "texture",
		Usage: "path or http(s) URL of the image used by textured scenes",
	}

	app := cli.NewApp()
	app.Name = "bvhtrace"
	app.Usage = "render scenes using monte carlo path tracing"
	app.Version = "0.1.0"
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
			Name:  "render",
			Usage: "render a still frame of a built-in scene",
			Description: `
Build one of the built-in scenes, construct a BVH over its objects and render
a single frame using a pool of cpu tracers. The output format is selected by
the extension of the output file (png, jpg, bmp or tiff).`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "spheres",
					Usage: "name of the scene to render; see list-scenes",
				},
				cli.IntFlag{
					Name:  "width",
					Value: 600,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 400,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 64,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "spp-per-pass",
					Value: 4,
					Usage: "samples per pixel added in each pass",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Usage: "number of cpu tracers; defaults to the number of cpus",
				},
				seedFlag,
				textureFlag,
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
				cli.BoolFlag{
					Name:  "no-bvh",
					Usage: "test rays against every object instead of using a BVH",
				},
				cli.StringFlag{
					Name:  "metrics-addr",
					Usage: "serve prometheus metrics on this address while rendering",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:   "list-scenes",
			Usage:  "list the built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:      "scene-info",
			Usage:     "display scene and BVH statistics",
			ArgsUsage: "scene_name",
			Flags: []cli.Flag{
				seedFlag,
				textureFlag,
			},
			Action: cmd.ShowSceneInfo,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
