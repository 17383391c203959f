package command

import (
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cayleygraph/ldt/clog"
	"github.com/cayleygraph/ldt/internal/config"
	"github.com/cayleygraph/ldt/provider"
	ldthttp "github.com/cayleygraph/ldt/server/http"
)

func NewHTTPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "http",
		Short: "Serve template calls and INSERT DATA conversion on the given host and port.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			o, err := openOntology(cfg)
			if err != nil {
				return err
			}
			var opts []provider.Option
			if cfg.BaseURI != nil {
				opts = append(opts, provider.WithBaseURI(cfg.BaseURI))
			}
			mux := http.NewServeMux()
			ldthttp.SetupRoutes(mux, provider.New(provider.StaticOntology(o), opts...), &ldthttp.Config{
				Timeout:  cfg.Timeout,
				ReadOnly: cfg.ReadOnly,
			})
			host := cfg.Host
			phost := host
			if h, port, err := net.SplitHostPort(host); err == nil && h == "" {
				phost = net.JoinHostPort("localhost", port)
			}
			clog.Infof("listening on %s, template calls at http://%s/", host, phost)
			srv := &http.Server{
				Addr:              host,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}
			return srv.ListenAndServe()
		},
	}
	cmd.Flags().String("host", "127.0.0.1:64210", "host:port to listen on")
	cmd.Flags().DurationP("timeout", "t", 30*time.Second, "elapsed time until an individual request times out")
	cmd.Flags().Bool("read_only", false, "disable the INSERT DATA endpoint")
	viper.BindPFlag(config.KeyHTTPHost, cmd.Flags().Lookup("host"))
	viper.BindPFlag(config.KeyHTTPTimeout, cmd.Flags().Lookup("timeout"))
	viper.BindPFlag(config.KeyHTTPReadOnly, cmd.Flags().Lookup("read_only"))
	return cmd
}
