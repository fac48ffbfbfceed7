package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/aretw0/graft"
	"github.com/aretw0/graft/pkg/bqm"
	"github.com/aretw0/graft/pkg/samplers/tabu"
)

var solveCmd = &cobra.Command{
	Use:   "solve <problem-file>",
	Short: "Solve a problem file with the tabu sampler",
	Long: `Loads a binary quadratic model from a YAML or JSON file, runs the
solving workflow, and prints the best samples found.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		restarts, _ := cmd.Flags().GetInt("restarts")
		sweeps, _ := cmd.Flags().GetInt("sweeps")
		seed, _ := cmd.Flags().GetUint64("seed")
		jsonMode, _ := cmd.Flags().GetBool("json")

		m, err := bqm.LoadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading problem: %v\n", err)
			os.Exit(1)
		}

		sampler, err := graft.NewSampler(
			tabu.New(
				tabu.WithRestarts(restarts),
				tabu.WithMaxSweeps(sweeps),
				tabu.WithSeed(seed),
			),
			graft.WithLogger(logger),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building sampler: %v\n", err)
			os.Exit(1)
		}

		ss, err := sampler.Sample(cmd.Context(), m)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error solving: %v\n", err)
			os.Exit(1)
		}

		if jsonMode {
			if err := json.NewEncoder(os.Stdout).Encode(ss); err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
				os.Exit(1)
			}
			return
		}

		printResult(m, ss)
	},
}

func printResult(m *bqm.Model, ss *bqm.SampleSet) {
	best, ok := ss.First()
	if !ok {
		fmt.Println("No samples produced.")
		return
	}

	p := termenv.ColorProfile()
	fmt.Printf("Variables: %d  Records: %d\n", m.NumVariables(), ss.Len())
	energy := termenv.String(fmt.Sprintf("%g", best.Energy)).
		Foreground(p.Color("#34d399")).
		Bold()
	fmt.Printf("Best energy: %s\n", energy)
	for _, v := range ss.Variables() {
		fmt.Printf("  %s = %d\n", v, best.Sample[v])
	}
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().Int("restarts", 8, "Number of independent search restarts")
	solveCmd.Flags().Int("sweeps", 100, "Maximum flip moves per restart")
	solveCmd.Flags().Uint64("seed", 1, "Random seed for reproducible runs")
	solveCmd.Flags().Bool("json", false, "Print the full sample set as JSON")
}
