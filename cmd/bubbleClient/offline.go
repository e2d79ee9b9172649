package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/allowlist"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/merkle"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/types"
)

func buildTreeFromFile(path string, sorted bool) (*merkle.AllowlistTree, error) {
	addrs, err := allowlist.LoadAddresses(path)
	if err != nil {
		return nil, err
	}
	var opts []merkle.TreeOption
	if sorted {
		opts = append(opts, merkle.WithSortedLeaves())
	}
	return merkle.BuildAllowlistTree(addrs, opts...)
}

func rootCommand(c *cli.Context) error {
	tree, err := buildTreeFromFile(c.String("allowlist"), c.Bool("sorted-leaves"))
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Root:   %s\n", tree.Root().Hex())
	fmt.Fprintf(c.App.Writer, "Leaves: %d\n", tree.Len())
	fmt.Fprintf(c.App.Writer, "Depth:  %d\n", tree.Depth())
	return nil
}

func proofCommand(c *cli.Context) error {
	addr, err := types.ParseAddress(c.String("address"))
	if err != nil {
		return err
	}
	tree, err := buildTreeFromFile(c.String("allowlist"), c.Bool("sorted-leaves"))
	if err != nil {
		return err
	}

	proof, err := tree.Proof(addr)
	if err != nil {
		return err
	}

	out, err := json.Marshal(types.DigestsToHex(proof))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, string(out))
	return nil
}

func verifyCommand(c *cli.Context) error {
	root, err := types.ParseDigest(c.String("root"))
	if err != nil {
		return fmt.Errorf("invalid root: %w", err)
	}
	addr, err := types.ParseAddress(c.String("address"))
	if err != nil {
		return err
	}
	proof, err := types.ParseDigests(c.StringSlice("proof"))
	if err != nil {
		return err
	}

	if !merkle.VerifyProof(root, addr, proof) {
		return cli.Exit(fmt.Sprintf("❌ Proof is not valid for %s", addr.Hex()), 1)
	}
	fmt.Fprintf(c.App.Writer, "✅ Proof is valid for %s\n", addr.Hex())
	return nil
}

func snapshotCommand(c *cli.Context) error {
	tree, err := buildTreeFromFile(c.String("allowlist"), c.Bool("sorted-leaves"))
	if err != nil {
		return err
	}

	snap := allowlist.NewSnapshot(tree, 0, c.String("label"))
	if err := allowlist.WriteSnapshot(c.String("output"), snap); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "✅ Wrote %d proofs for root %s to %s\n", tree.Len(), tree.Root().Hex(), c.String("output"))
	return nil
}
