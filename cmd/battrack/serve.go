package main

import (
	"github.com/spf13/cobra"

	"github.com/battrack/battrack/pkg/server"
	"github.com/battrack/battrack/pkg/tracker"
)

func NewServeCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: gQuery,
		Short:   "Serve the battery history HTTP API",
		Long: `Serve the query/record HTTP API over the store.

Endpoints: GET /api/current, GET /api/history?days=N, POST /api/record,
GET /api/stats?days=N.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			conf, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := openStore(conf)
			if err != nil {
				return err
			}
			defer st.Close()

			if listen == "" {
				listen = conf.ListenAddress
			}

			extractor := newExtractor(conf)
			return server.New(extractor, tracker.New(extractor, st), st).Run(listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")

	return cmd
}
