package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/spanflow/store"
)

func newRunsCommand() *cobra.Command {
	var path string
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(path, func(db *store.Store) error {
				recs, err := db.List(limit)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tCREATED\tSCENARIO\tNODES\tEDGES\tDELIVERY")
				for _, r := range recs {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%.4f\n", r.ID,
						time.Unix(r.CreatedAt, 0).UTC().Format(time.RFC3339),
						r.Scenario, r.Nodes, r.Edges, r.Summary.DeliveryRatio)
				}
				return tw.Flush()
			})
		},
	}
	cmd.PersistentFlags().StringVarP(&path, "store", "s", "runs.db", "path to the run database")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n runs (0 shows all)")

	cmd.AddCommand(&cobra.Command{
		Use:   "show ID",
		Short: "Print the archived JSON report of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(path, func(db *store.Store) error {
				rec, err := db.Get(args[0])
				if err != nil {
					return err
				}
				var buf bytes.Buffer
				if err := json.Indent(&buf, rec.Report, "", "  "); err != nil {
					return errors.Wrap(err, "format report")
				}
				buf.WriteByte('\n')
				_, err = buf.WriteTo(cmd.OutOrStdout())
				return err
			})
		},
	}, &cobra.Command{
		Use:   "rm ID...",
		Short: "Delete archived runs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(path, func(db *store.Store) error {
				for _, id := range args {
					if err := db.Delete(id); err != nil {
						return err
					}
				}
				return nil
			})
		},
	})
	return cmd
}

func withStore(path string, fn func(*store.Store) error) error {
	db, err := store.Open(path, 0)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}
