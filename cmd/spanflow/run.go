package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/spanflow/config"
	"github.com/katalvlaran/spanflow/engine"
	"github.com/katalvlaran/spanflow/store"
)

type runOptions struct {
	scenario    string
	jsonOut     bool
	showMetrics bool
	archive     string
}

func newRunCommand() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one run over a YAML scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.scenario, "config", "c", "scenario.yaml", "path to scenario file")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&opts.showMetrics, "metrics", false, "print run instrumentation in Prometheus text format")
	cmd.Flags().StringVar(&opts.archive, "store", "", "archive the report in this run database")
	return cmd
}

func runScenario(cmd *cobra.Command, opts runOptions) error {
	sc, err := config.LoadScenario(opts.scenario)
	if err != nil {
		return err
	}
	grids, err := sc.Landscape.Grids()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	col := engine.NewCollector("spanflow")
	if err := col.Register(reg); err != nil {
		return errors.Wrap(err, "register metrics")
	}

	run, err := engine.NewRun(sc.Config, engine.Inputs{
		Supply:     grids.Supply,
		Demand:     grids.Demand,
		Resistance: grids.Resistance,
	}, engine.WithLogger(log.StandardLogger()), engine.WithCollector(col))
	if err != nil {
		return err
	}
	res, err := run.Execute(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	rep := newReport(res)
	if opts.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return errors.Wrap(err, "encode report")
		}
	} else {
		writeText(out, rep)
	}
	if opts.archive != "" {
		if err := archive(opts.archive, opts.scenario, rep); err != nil {
			return err
		}
		log.WithField("store", opts.archive).Debug("run archived")
	}
	if opts.showMetrics {
		return writeMetrics(out, reg)
	}
	return nil
}

func writeText(w io.Writer, rep report) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "run\t%s\n", rep.RunID)
	fmt.Fprintf(tw, "supply / demand cells\t%d / %d\n", rep.SupplyCells, rep.DemandCells)
	fmt.Fprintf(tw, "routed pairs\t%d\n", rep.Pairs)
	fmt.Fprintf(tw, "total theoretical\t%.6g\n", rep.Summary.TotalTheoretical)
	fmt.Fprintf(tw, "total actual\t%.6g\n", rep.Summary.TotalActual)
	fmt.Fprintf(tw, "total used\t%.6g\n", rep.Summary.TotalUsed)
	fmt.Fprintf(tw, "total blocked\t%.6g\n", rep.Summary.TotalBlocked)
	fmt.Fprintf(tw, "delivery / use / block ratio\t%.4f / %.4f / %.4f\n",
		rep.Summary.DeliveryRatio, rep.Summary.UseRatio, rep.Summary.BlockRatio)
	fmt.Fprintf(tw, "graph nodes / edges\t%d / %d\n", rep.Graph.Nodes, rep.Graph.Edges)
	fmt.Fprintf(tw, "density\t%.4f\n", float64(rep.Graph.Density))
	fmt.Fprintf(tw, "connectivity\t%.4f\n", float64(rep.Graph.Connectivity))
	fmt.Fprintf(tw, "communities\t%d (Q=%.4f)\n", rep.Graph.Communities, float64(rep.Graph.Modularity))
	fmt.Fprintf(tw, "critical fraction\t%.4f\n", float64(rep.Graph.CriticalFraction))
	fmt.Fprintf(tw, "moran's I\t%.4f (z=%.2f, p=%.4f)\n",
		float64(rep.Spatial.MoranI), float64(rep.Spatial.MoranZ), float64(rep.Spatial.MoranP))
	fmt.Fprintf(tw, "hot / cold spots\t%d / %d\n", rep.Spatial.Hot, rep.Spatial.Cold)
	_ = tw.Flush()
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrap(err, "write metrics")
		}
	}
	return nil
}

func archive(path, scenario string, rep report) error {
	raw, err := json.Marshal(rep)
	if err != nil {
		return errors.Wrap(err, "encode report")
	}
	db, err := store.Open(path, 0)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Save(&store.Record{
		ID:       rep.RunID,
		Scenario: scenario,
		Nodes:    rep.Graph.Nodes,
		Edges:    rep.Graph.Edges,
		Summary:  rep.Summary,
		Report:   raw,
	})
}
