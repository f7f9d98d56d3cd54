package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gogotex/datastore/internal/config"
	"github.com/gogotex/datastore/internal/document"
	"github.com/gogotex/datastore/internal/document/service"
	"github.com/spf13/cobra"
)

// opener builds the store for a command; service.Open in production.
type opener func(ctx context.Context, cfg *config.Config) (service.Service, service.CloseFunc, error)

func newRootCmd(open opener) *cobra.Command {
	var (
		cfgFile string
		backend string
		cfg     *config.Config
	)

	root := &cobra.Command{
		Use:          "datastorectl",
		Short:        "Inspect and seed the datastore document collection",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if backend != "" {
				c.Store.Backend = backend
			}
			cfg = c
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json, toml); environment variables take precedence")
	root.PersistentFlags().StringVar(&backend, "backend", "", "store backend override: mongo, memory or minio")

	// withStore opens the store for the duration of fn
	withStore := func(cmd *cobra.Command, fn func(svc service.Service) error) error {
		ctx := cmd.Context()
		svc, closeFn, err := open(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = closeFn(ctx) }()
		return fn(svc)
	}

	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every document as a JSON array",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(svc service.Service) error {
				docs, err := svc.ListAll(cmd.Context())
				if err != nil {
					return fmt.Errorf("list documents: %w", err)
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(docs)
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "insert [json]",
		Short: "Insert one JSON object, read from the argument or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			if len(args) == 1 {
				raw = []byte(args[0])
			} else {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				raw = b
			}
			d, err := document.Decode(bytes.NewReader(raw))
			if err != nil {
				return fmt.Errorf("decode document: %w", err)
			}
			return withStore(cmd, func(svc service.Service) error {
				if err := svc.Insert(cmd.Context(), d); err != nil {
					return fmt.Errorf("insert document: %w", err)
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), `{"status":"Data inserted"}`)
				return err
			})
		},
	})

	return root
}
