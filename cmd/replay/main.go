package main

import (
	"fmt"
	"math/big"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zkmaps/indexed-merkle-map/imm"
	"github.com/zkmaps/indexed-merkle-map/pkg/trace"
)

func main() {
	var inPath string

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	rootCmd := &cobra.Command{
		Use:   "replay",
		Short: "Statelessly re-verify a witness trace without materializing the tree",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, err := trace.Read(inPath)
			if err != nil {
				return err
			}

			verifier := imm.NewProvable(imm.Poseidon)
			var prev *big.Int
			for i, rec := range tr.Records {
				var oldRoot, newRoot *big.Int
				switch rec.Kind {
				case trace.KindInsert:
					if err := verifier.Insert(rec.Insert); err != nil {
						return fmt.Errorf("record %d: %w", i, err)
					}
					oldRoot, newRoot = rec.Insert.OldRoot, rec.Insert.NewRoot
				case trace.KindUpdate:
					if err := verifier.Update(rec.Update); err != nil {
						return fmt.Errorf("record %d: %w", i, err)
					}
					oldRoot, newRoot = rec.Update.OldRoot, rec.Update.NewRoot
				default:
					return fmt.Errorf("record %d: unknown kind %q", i, rec.Kind)
				}
				if prev != nil && prev.Cmp(oldRoot) != 0 {
					return fmt.Errorf("record %d: root chain broken", i)
				}
				prev = newRoot
				log.Info().Int("record", i).Str("kind", string(rec.Kind)).Str("root", newRoot.String()).Msg("accepted")
			}
			log.Info().Int("records", len(tr.Records)).Msg("trace verified")
			return nil
		},
	}

	rootCmd.Flags().StringVar(&inPath, "in", "trace.json", "witness trace input")

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("replay failed")
		os.Exit(1)
	}
}
