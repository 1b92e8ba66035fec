// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nttcom/pcepobj/internal/pkg/cspf"
	"github.com/nttcom/pcepobj/internal/pkg/table"
)

var metricTypes = map[string]table.MetricType{
	"igp": table.IGP_METRIC,
	"te":  table.TE_METRIC,
}

func newPathCmd() *cobra.Command {
	pathCmd := &cobra.Command{
		Use:   "path [hex...]",
		Short: "Compute an ERO over the TED built from TE objects",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			src, err := flags.GetString("src")
			if err != nil {
				return err
			}
			dst, err := flags.GetString("dst")
			if err != nil {
				return err
			}
			asn, err := flags.GetUint32("asn")
			if err != nil {
				return err
			}
			metricName, err := flags.GetString("metric")
			if err != nil {
				return err
			}
			metric, ok := metricTypes[metricName]
			if !ok {
				return fmt.Errorf("unknown metric %q", metricName)
			}

			data, err := readInput(flags, args)
			if err != nil {
				return err
			}
			ted, err := buildTed(data)
			if err != nil {
				return err
			}
			path, err := cspf.Cspf(src, dst, asn, metric, ted)
			if err != nil {
				return err
			}
			cliLogger.Debug("computed path", zap.String("src", src), zap.String("dst", dst), zap.Int("hops", len(path)))

			ero, err := cspf.Ero(path)
			if err != nil {
				return err
			}
			if outputFmt == formatText {
				b, err := ero.Serialize(codecOpts...)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(b))
				return err
			}
			v, err := view(ero)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), outputFmt, v)
		},
	}

	pathCmd.Flags().String("src", "", "IGP router-id of the head end")
	pathCmd.Flags().String("dst", "", "IGP router-id of the tail end")
	pathCmd.Flags().Uint32("asn", 0, "AS number the nodes belong to")
	pathCmd.Flags().String("metric", "igp", "metric to minimize (igp|te)")
	_ = pathCmd.MarkFlagRequired("src")
	_ = pathCmd.MarkFlagRequired("dst")
	addInputFlags(pathCmd.Flags())
	return pathCmd
}
