package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oski/internal/game"
	"github.com/vovakirdan/oski/internal/world"
)

var flagTopology bool

var mapCmd = &cobra.Command{
	Use:   "map <seed>",
	Short: "Print the world generated from a seed",
	Long: `Generate the world for a seed and print it as text.

Legend:
  #  wall      "  grass
  B  beer      C  clipper card
  @  avatar    O  Oski

Examples:
  oski map 42
  oski map 42 --topology
  oski map 7 --preset cozy`,
	Args: cobra.ExactArgs(1),
	Run:  runMap,
}

func init() {
	mapCmd.Flags().BoolVar(&flagTopology, "topology", false, "Only rooms, corridors and walls")
}

func runMap(_ *cobra.Command, args []string) {
	seed, err := game.ParseSeed(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	layout, err := world.Generate(seed, cfg.Params(), world.Options{FirstGeneration: !flagTopology})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(layout.Grid.String())
	fmt.Println()
	fmt.Printf("Seed:   %d (%dx%d)\n", seed, layout.Grid.Width(), layout.Grid.Height())
	fmt.Printf("Rooms:  %d\n", len(layout.Anchors))
	if flagTopology {
		return
	}
	fmt.Printf("Items:  %d beer, %d card\n", len(layout.Items.Beer), len(layout.Items.Cards))
	fmt.Printf("Oski:   %v\n", layout.NPC)
	fmt.Printf("Avatar: %v\n", layout.Avatar)
}
