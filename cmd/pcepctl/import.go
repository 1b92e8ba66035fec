// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nttcom/pcepobj/internal/pkg/gobgp"
	"github.com/nttcom/pcepobj/pkg/packet/pcep"
)

func newImportCmd() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Convert the BGP-LS RIB of a GoBGP daemon into TE objects",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cliConfig.GobgpOptions()
			if addr := cmd.Flag("gobgp-addr").Value.String(); addr != "" {
				opts.GobgpAddr = addr
			}
			if port := cmd.Flag("gobgp-port").Value.String(); port != "" {
				opts.GobgpPort = port
			}
			out, err := cmd.Flags().GetString("out")
			if err != nil {
				return err
			}

			objs, err := gobgp.GetTEObjects(cmd.Context(), opts, cliLogger)
			if err != nil {
				return err
			}
			cliLogger.Info("imported BGP-LS", zap.String("server", opts.GobgpAddr+":"+opts.GobgpPort), zap.Int("teObjects", len(objs)))
			return writeTEObjects(cmd, objs, out)
		},
	}

	importCmd.Flags().String("gobgp-addr", "", "GoBGP API address (default from config, else 127.0.0.1)")
	importCmd.Flags().String("gobgp-port", "", "GoBGP API port (default from config, else 50051)")
	importCmd.Flags().String("out", "", "write raw bytes to this file instead of hex to stdout")
	return importCmd
}

// writeTEObjects prints objs as hex, as a rendered view, or writes raw bytes to out.
func writeTEObjects(cmd *cobra.Command, objs []*pcep.TEObject, out string) error {
	if outputFmt != formatText && out == "" {
		v, err := views(objs)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), outputFmt, v)
	}

	var c pcep.Cursor
	for i, obj := range objs {
		if _, err := obj.Write(&c, codecOpts...); err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
	}
	if out != "" {
		return os.WriteFile(out, c.Bytes(), 0644)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(c.Bytes()))
	return err
}
