// Command bimgltf packs OBJ scene catalogs into binary glTF containers.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/bimgltf/internal/catalog"
	"github.com/Faultbox/bimgltf/internal/config"
	"github.com/Faultbox/bimgltf/internal/logger"
	"github.com/Faultbox/bimgltf/pkg/gltf"
)

func main() {
	app := &cli.App{
		Name:  "bimgltf",
		Usage: "pack OBJ scene catalogs into binary glTF containers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to config file",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "container format: glb or gltf1 (overrides config)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "pack",
				Usage:     "pack a scene manifest into a binary glTF file",
				ArgsUsage: "<manifest.yaml>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "out",
						Usage:    "path to output container",
						Required: true,
					},
				},
				Action: runPack,
			},
			{
				Name:      "stats",
				Usage:     "report segment sizes for a scene without writing output",
				ArgsUsage: "<manifest.yaml>",
				Action:    runStats,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// setup loads config, resolves the packing policy and builds the
// logger shared by both commands.
func setup(c *cli.Context) (*catalog.Catalog, gltf.Policy, *zap.Logger, error) {
	if c.Args().Len() != 1 {
		return nil, gltf.Policy{}, nil, fmt.Errorf("expected one manifest path argument")
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, gltf.Policy{}, nil, err
	}

	format := cfg.Output.Format
	if f := c.String("format"); f != "" {
		format = f
	}
	policy, ok := gltf.PolicyByName(format)
	if !ok {
		return nil, gltf.Policy{}, nil, fmt.Errorf("unknown format %q", format)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)

	scene, err := catalog.Load(c.Args().First())
	if err != nil {
		return nil, gltf.Policy{}, nil, err
	}
	return scene, policy, log, nil
}

func runPack(c *cli.Context) error {
	scene, policy, log, err := setup(c)
	if err != nil {
		return err
	}
	defer log.Sync()

	out, err := os.Create(c.String("out"))
	if err != nil {
		return err
	}
	defer out.Close()

	report, err := gltf.NewSerializer(scene, policy, gltf.WithLogger(log)).Write(out)
	if err != nil {
		// Nothing was written on failure; don't leave an empty file.
		out.Close()
		os.Remove(c.String("out"))
		return err
	}

	log.Info("wrote container",
		zap.String("path", c.String("out")),
		zap.Int("products", report.Products),
		zap.Int("meshes", report.Meshes),
		zap.Int("sceneBytes", report.SceneBytes),
		zap.Int("bodyBytes", report.BodyBytes))
	return nil
}

func runStats(c *cli.Context) error {
	scene, policy, log, err := setup(c)
	if err != nil {
		return err
	}
	defer log.Sync()

	sizes, err := gltf.NewSerializer(scene, policy, gltf.WithLogger(log)).MeasureBody()
	if err != nil {
		return err
	}

	total := 0
	names := []string{"indices", "vertices", "normals", "colors"}
	for i, n := range sizes {
		fmt.Printf("%-10s %d bytes\n", names[i], n)
		total += n
	}
	fmt.Printf("%-10s %d bytes\n", "body", total)
	return nil
}
