package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zkmaps/indexed-merkle-map/imm"
	"github.com/zkmaps/indexed-merkle-map/pkg/trace"
)

func main() {
	var (
		height uint64
		inPath string
		out    string
	)

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	rootCmd := &cobra.Command{
		Use:   "builder",
		Short: "Apply insert/update commands to a fresh indexed Merkle map and emit the witness trace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ops, err := trace.ReadOps(inPath)
			if err != nil {
				return err
			}

			m, err := imm.New(height, imm.Poseidon)
			if err != nil {
				return err
			}

			tr := &trace.Trace{Height: height}
			for i, op := range ops {
				switch op.Op {
				case "insert":
					w, err := m.InsertWithWitness(op.Key, op.Value)
					if err != nil {
						return fmt.Errorf("op %d: insert %s: %w", i, op.Key, err)
					}
					tr.Records = append(tr.Records, trace.Record{Kind: trace.KindInsert, Insert: w})
				case "update":
					w, err := m.UpdateWithWitness(op.Key, op.Value)
					if err != nil {
						return fmt.Errorf("op %d: update %s: %w", i, op.Key, err)
					}
					tr.Records = append(tr.Records, trace.Record{Kind: trace.KindUpdate, Update: w})
				case "set":
					if _, ok := m.Get(op.Key); ok {
						w, err := m.UpdateWithWitness(op.Key, op.Value)
						if err != nil {
							return fmt.Errorf("op %d: set %s: %w", i, op.Key, err)
						}
						tr.Records = append(tr.Records, trace.Record{Kind: trace.KindUpdate, Update: w})
					} else {
						w, err := m.InsertWithWitness(op.Key, op.Value)
						if err != nil {
							return fmt.Errorf("op %d: set %s: %w", i, op.Key, err)
						}
						tr.Records = append(tr.Records, trace.Record{Kind: trace.KindInsert, Insert: w})
					}
				default:
					return fmt.Errorf("op %d: unknown op %q", i, op.Op)
				}
				log.Info().Int("op", i).Str("key", op.Key.String()).Str("root", m.Root().String()).Msg("applied")
			}

			if err := trace.Write(out, tr); err != nil {
				return err
			}
			log.Info().Uint64("length", m.Length()).Str("root", m.Root().String()).Str("out", out).Msg("trace written")
			return nil
		},
	}

	rootCmd.Flags().Uint64Var(&height, "height", 10, "tree height (capacity 2^(height-1) leaves)")
	rootCmd.Flags().StringVar(&inPath, "in", "ops.json", "JSON command list")
	rootCmd.Flags().StringVar(&out, "out", "trace.json", "witness trace output")

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("builder failed")
		os.Exit(1)
	}
}
