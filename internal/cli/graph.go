package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sagaworks/sagalint/internal/ctxlog"
	clierrors "github.com/sagaworks/sagalint/internal/errors"
	"github.com/sagaworks/sagalint/internal/game"
	"github.com/sagaworks/sagalint/internal/report"
	"github.com/sagaworks/sagalint/internal/stationgraph"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <game.json>",
		Short: "Show how stations lead to each other",
		Long: `Load a game and draw its station graph: stations are nodes, "opens" entries
and event targets are links. Stations are grouped by distance from the entry
stations (those nothing leads to). Stations only reachable through a loop are
listed as unreachable.`,
		Example: `  sagalint graph saga/game.json
  sagalint graph saga/game.json --compact`,
		GroupID: GroupInspection,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			compact, _ := cmd.Flags().GetBool("compact")
			detailed, _ := cmd.Flags().GetBool("detailed")
			return runGraph(cmd.Context(), args[0], readGlobalOptions(cmd), compact, detailed,
				cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().Bool("compact", false, "Show compact single-line output")
	cmd.Flags().Bool("detailed", false, "List every station with its links")
	return cmd
}

// graphDocument is the json/yaml shape of a station graph.
type graphDocument struct {
	Entries     []string           `json:"entries" yaml:"entries"`
	Levels      []graphLevel       `json:"levels" yaml:"levels"`
	Unreachable []string           `json:"unreachable" yaml:"unreachable"`
	Links       []graphLink        `json:"links" yaml:"links"`
	Dangling    []graphLink        `json:"dangling" yaml:"dangling"`
	Loop        []string           `json:"loop,omitempty" yaml:"loop,omitempty"`
	Stats       stationgraph.Stats `json:"stats" yaml:"stats"`
}

type graphLevel struct {
	Number   int      `json:"number" yaml:"number"`
	Stations []string `json:"stations" yaml:"stations"`
}

type graphLink struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
	Kind string `json:"kind" yaml:"kind"`
}

func runGraph(ctx context.Context, path string, opts globalOptions, compact, detailed bool, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if compact && detailed {
		clierrors.FprintError(errOut, clierrors.InvalidFlagCombination("--compact --detailed", "choose one rendering"))
		return NewExitError(ExitInvalidArguments)
	}

	st, err := loadSettings(ctx, opts, errOut)
	if err != nil {
		return err
	}

	g, err := game.LoadGame(path, game.LoadOptions{Policy: st.cfg.LoadPolicy()})
	if err != nil {
		s := &session{settings: st, errOut: errOut}
		return NewExitError(s.fail(path, err))
	}

	graph := stationgraph.Build(g)
	ctxlog.FromContext(st.ctx).Debug("built station graph", "graph", graph.String())

	switch st.format {
	case report.FormatJSON:
		data, err := json.MarshalIndent(newGraphDocument(graph), "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling graph: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case report.FormatYAML:
		data, err := yaml.Marshal(newGraphDocument(graph))
		if err != nil {
			return fmt.Errorf("marshaling graph: %w", err)
		}
		out.Write(data)
	default:
		switch {
		case compact:
			fmt.Fprintln(out, graph.RenderCompact())
		case detailed:
			fmt.Fprint(out, graph.RenderDetailed())
		default:
			fmt.Fprint(out, graph.RenderASCII())
		}
	}
	return nil
}

func newGraphDocument(g *stationgraph.Graph) graphDocument {
	doc := graphDocument{
		Entries:     nonNil(g.Entries()),
		Levels:      []graphLevel{},
		Unreachable: nonNil(g.Unreachable()),
		Links:       links(g.Edges()),
		Dangling:    links(g.Dangling()),
		Loop:        g.FindCycle(),
		Stats:       g.GetStats(),
	}
	for _, l := range g.Levels() {
		doc.Levels = append(doc.Levels, graphLevel{Number: l.Number, Stations: l.StationIDs})
	}
	return doc
}

func links(edges []stationgraph.Edge) []graphLink {
	out := make([]graphLink, 0, len(edges))
	for _, e := range edges {
		out = append(out, graphLink{From: e.From, To: e.To, Kind: e.Kind.String()})
	}
	return out
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
