// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nttcom/pcepobj/pkg/packet/pcep"
)

func newDecodeCmd() *cobra.Command {
	decodeCmd := &cobra.Command{
		Use:   "decode [hex...]",
		Short: "Decode concatenated ERO and TE objects",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.Flags(), args)
			if err != nil {
				return err
			}
			objs, err := pcep.DecodeObjects(data, codecOpts...)
			if err != nil {
				cliLogger.Debug("decode failed", zap.Error(err))
				return err
			}
			v, err := views(objs)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), outputFmt, v)
		},
	}

	addInputFlags(decodeCmd.Flags())
	return decodeCmd
}
