// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nttcom/pcepobj/internal/config"
	"github.com/nttcom/pcepobj/pkg/logger"
	"github.com/nttcom/pcepobj/pkg/packet/pcep"
)

var (
	codecOpts []pcep.Opt
	cliConfig config.Config
	cliLogger = zap.NewNop()
	outputFmt string
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "pcepctl",
		Short:        "Decode and encode PCEP ERO and TE objects",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringP("config", "f", "", "Specify a configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", formatText, "output format (text|json|yaml|cbor)")

	rootCmd.AddCommand(newDecodeCmd(), newEncodeCmd(), newTedCmd(), newPathCmd(), newImportCmd(), newTypesCmd())
	rootCmd.PersistentPreRunE = persistentPreRunE
	rootCmd.Run = runRootCmd

	return rootCmd
}

func persistentPreRunE(cmd *cobra.Command, args []string) error {
	if !validFormat(outputFmt) {
		return fmt.Errorf("unknown output format %q", outputFmt)
	}

	var c config.Config
	if configFile := cmd.Flag("config").Value.String(); configFile != "" {
		var err error
		if c, err = config.ReadConfigFile(configFile); err != nil {
			return err
		}
	}

	var fp *os.File
	if logFile := c.LogFile(); logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return err
		}
		var err error
		if fp, err = os.OpenFile(logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666); err != nil {
			return err
		}
	}
	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return err
	}
	cliLogger = logger.LogInit(fp, debug || c.Global.Log.Debug)

	opts, err := c.CodecOpts()
	if err != nil {
		return err
	}
	codecOpts = append(opts, pcep.WithLogger(cliLogger))
	cliConfig = c
	return nil
}

func runRootCmd(cmd *cobra.Command, args []string) {
	cmd.HelpFunc()(cmd, args)
}
