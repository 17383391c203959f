package command

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/spf13/cobra"

	"github.com/cayleygraph/ldt/client"
	"github.com/cayleygraph/ldt/internal"
	"github.com/cayleygraph/ldt/update"
)

const (
	flagGraph       = "graph"
	flagFormat      = "format"
	flagInputFormat = "input_format"
	flagOutput      = "output"
	flagCompact     = "compact"
	flagComment     = "comment"
	flagRemote      = "remote"

	formatSPARQL = "sparql"
	formatJSONLD = "jsonld"
)

func outputFormats() string {
	names := []string{formatSPARQL}
	for _, f := range quad.Formats() {
		if f.Writer != nil {
			names = append(names, f.Name)
		}
	}
	sort.Strings(names[1:])
	return `"` + strings.Join(names, `", "`) + `"`
}

func NewInsertDataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insert-data [file]",
		Short: "Convert RDF data into a SPARQL INSERT DATA operation.",
		Long: "Convert RDF data into a SPARQL INSERT DATA operation, written as SPARQL text " +
			"or as its SPIN RDF form. Reads stdin if no file is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			inFormat, _ := cmd.Flags().GetString(flagInputFormat)
			outFormat, _ := cmd.Flags().GetString(flagFormat)
			out, _ := cmd.Flags().GetString(flagOutput)
			graph, _ := cmd.Flags().GetString(flagGraph)
			compact, _ := cmd.Flags().GetBool(flagCompact)
			comment, _ := cmd.Flags().GetString(flagComment)
			remote, _ := cmd.Flags().GetString(flagRemote)

			if compact && outFormat != formatJSONLD {
				return fmt.Errorf("--%s requires --%s=%s", flagCompact, flagFormat, formatJSONLD)
			}
			if graph != "" {
				if u, err := url.Parse(graph); err != nil || !u.IsAbs() {
					return fmt.Errorf("graph must be an absolute IRI: %q", graph)
				}
			}
			quads, err := internal.ReadQuads(path, inFormat)
			if err != nil {
				return err
			}
			if remote != "" {
				if outFormat != formatSPARQL {
					return fmt.Errorf("--%s only supports --%s=%s", flagRemote, flagFormat, formatSPARQL)
				}
				text, err := client.New(remote).InsertData(cmd.Context(), quad.NewReader(quads), graph, comment)
				if err != nil {
					return err
				}
				return writeText(cmd, out, text)
			}

			if graph != "" {
				for i := range quads {
					quads[i].Label = quad.IRI(graph)
				}
			}
			b := update.FromQuads(quads)
			if comment != "" {
				b.Comment(comment)
			}
			u, err := b.Build()
			if err != nil {
				return err
			}
			switch {
			case outFormat == formatSPARQL:
				text, err := u.SPARQL()
				if err != nil {
					return err
				}
				return writeText(cmd, out, text+"\n")
			case compact:
				doc, err := compactJSONLD(u.Statements())
				if err != nil {
					return err
				}
				return writeJSON(cmd, out, doc)
			}
			return writerQuadsTo(cmd, out, outFormat, quad.NewReader(u.Statements()))
		},
	}
	cmd.Flags().String(flagGraph, "", "named graph for all statements")
	cmd.Flags().StringP(flagFormat, "f", formatSPARQL, "output format ("+outputFormats()+")")
	cmd.Flags().String(flagInputFormat, "", "input format instead of auto-detection")
	cmd.Flags().StringP(flagOutput, "o", "-", `output file (".gz" supported, "-" for stdout)`)
	cmd.Flags().Bool(flagCompact, false, "compact JSON-LD output with the registered namespace prefixes")
	cmd.Flags().String(flagComment, "", "rdfs:comment of the operation")
	cmd.Flags().String(flagRemote, "", "convert on a running ldt server instead")
	return cmd
}
