package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/cayleygraph/ldt/client"
	"github.com/cayleygraph/ldt/ontology"
)

var errNoMatch = errors.New("no template matches")

func NewMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <uri>",
		Short: "Print the template call of a request URI.",
		Long: "Print the template call of a request URI as JSON. " +
			"The URI is matched against the loaded ontology, or resolved by a running server with --remote.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out interface{}
			if remote, _ := cmd.Flags().GetString("remote"); remote != "" {
				call, err := client.New(remote).TemplateCall(cmd.Context(), args[0])
				if client.IsNotFound(err) {
					return fmt.Errorf("%w %s", errNoMatch, args[0])
				} else if err != nil {
					return err
				}
				out = call
			} else {
				call, err := matchLocal(args[0])
				if err != nil {
					return err
				}
				out = call
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(out)
		},
	}
	cmd.Flags().String("remote", "", "address of a running ldt server")
	return cmd
}

func matchLocal(uri string) (*ontology.TemplateCall, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(uri)
	if err != nil {
		return nil, err
	} else if !u.IsAbs() {
		return nil, fmt.Errorf("request URI must be absolute: %q", uri)
	}
	base := cfg.BaseURI
	if base == nil {
		base = &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}
	}
	o, err := openOntology(cfg)
	if err != nil {
		return nil, err
	}
	call, err := ontology.NewMatcher(o).Match(u, base)
	if err != nil {
		return nil, err
	} else if call == nil {
		return nil, fmt.Errorf("%w %s", errNoMatch, uri)
	}
	return call, nil
}
