package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"

	"github.com/achilleasa/bvhtrace/bvh"
	"github.com/achilleasa/bvhtrace/catalog"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Scene"})
	for _, name := range catalog.Names() {
		table.Append([]string{name})
	}
	table.Render()

	fmt.Fprint(ctx.App.Writer, buf.String())
	return nil
}

// Build a scene and its BVH and display their statistics.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene name argument")
	}

	seed := ctx.Int64("seed")
	reg, err := catalog.Build(ctx.Args().First(), catalog.Options{
		FrameW:      1,
		FrameH:      1,
		Seed:        seed,
		TexturePath: ctx.String("texture"),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.App.Writer, "scene information:\n%s", reg.Stats())

	accel, err := bvh.New(reg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "bvh information:\n%s", accel.Stats())

	return nil
}
