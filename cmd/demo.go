/*
   Copyright 2024-2026 The ERS authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ltans/evidence/crypto/hashing"
	"github.com/ltans/evidence/ers"
	"github.com/ltans/evidence/merkle"
)

type demoOptions struct {
	leaves      []string
	renewLeaves []string
	algorithm   string
	renewAlg    string
	brackets    bool
}

func newDemoCommand() *cobra.Command {

	opts := demoOptions{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk an evidence record lifecycle end to end",
		Long: `Build a hash tree over symbolic leaf digests, create one evidence
record per leaf, renew the whole batch under a second algorithm and verify
every record. Digests are combined by concatenation so the printed trees
spell out every combination.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(opts)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&opts.leaves, "leaves", []string{"h1", "h2", "h3"}, "Initial leaf digests")
	f.StringSliceVar(&opts.renewLeaves, "renewed-leaves", []string{"H1", "H2", "H3"}, "Renewed document digests, one per leaf")
	f.StringVar(&opts.algorithm, "algorithm", "SHA256", "Label of the initial digest algorithm")
	f.StringVar(&opts.renewAlg, "renew-algorithm", "SHA512", "Label of the renewal digest algorithm")
	f.BoolVar(&opts.brackets, "brackets", false, "Render combined digests with bracket notation")

	return cmd
}

func runDemo(opts demoOptions) error {
	if len(opts.leaves) == 0 {
		return fmt.Errorf("at least one leaf is required")
	}
	if len(opts.renewLeaves) != len(opts.leaves) {
		return fmt.Errorf("got %d renewed leaves for %d leaves", len(opts.renewLeaves), len(opts.leaves))
	}
	if opts.algorithm == opts.renewAlg {
		return fmt.Errorf("the renewal algorithm must differ from %s", opts.algorithm)
	}

	hasherFor := func(algorithm string) (hashing.Hasher, error) {
		if opts.brackets {
			return hashing.NewBracketConcatHasher(algorithm), nil
		}
		return hashing.NewConcatHasher(algorithm), nil
	}
	encoder := ers.ConcatEncoder{}
	clock := ers.WallClock{}
	verifier := ers.NewVerifier(hasherFor, encoder, clock)

	hasher, _ := hasherFor(opts.algorithm)
	leaves := make([]hashing.Digest, 0, len(opts.leaves))
	for _, leaf := range opts.leaves {
		leaves = append(leaves, hashing.Digest(leaf))
	}

	tree, err := merkle.New(hasher, leaves)
	if err != nil {
		return err
	}
	fmt.Printf("\nFull hash tree:%s\n", merkle.Sprint(tree))

	records := make([]*ers.Record, 0, len(leaves))
	for _, leaf := range leaves {
		path, err := tree.Reduce(leaf)
		if err != nil {
			return err
		}
		record, err := ers.NewRecord(tree, path, opts.algorithm, clock)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s", ers.Describe(record))

		result := verifier.Verify(record, []ers.DigestAlgorithm{{Digest: leaf, Algorithm: opts.algorithm}})
		printResult(leaf, result)

		records = append(records, record)
	}

	requests := make([]ers.RenewalRequest, 0, len(records))
	for i, record := range records {
		requests = append(requests, ers.RenewalRequest{
			Record:  record,
			Digests: []hashing.Digest{hashing.Digest(opts.renewLeaves[i])},
		})
	}

	renewHasher, _ := hasherFor(opts.renewAlg)
	renewed, newTree, err := ers.Renew(requests, renewHasher, encoder, clock)
	if err != nil {
		return err
	}
	fmt.Printf("\nRenewed hash tree:%s\n", merkle.Sprint(newTree))

	for i, record := range renewed {
		fmt.Printf("\n%s", ers.Describe(record))

		result := verifier.Verify(record, []ers.DigestAlgorithm{
			{Digest: leaves[i], Algorithm: opts.algorithm},
			{Digest: hashing.Digest(opts.renewLeaves[i]), Algorithm: opts.renewAlg},
		})
		printResult(leaves[i], result)
	}

	return nil
}

func printResult(leaf hashing.Digest, err error) {
	if err != nil {
		fmt.Printf("\nVerification of [%v] failed: %v\n", leaf, err)
		return
	}
	fmt.Printf("\nVerification of [%v] successful\n", leaf)
}
