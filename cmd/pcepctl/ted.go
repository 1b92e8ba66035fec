// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nttcom/pcepobj/internal/pkg/table"
	"github.com/nttcom/pcepobj/pkg/packet/pcep"
)

func newTedCmd() *cobra.Command {
	tedCmd := &cobra.Command{
		Use:   "ted [hex...]",
		Short: "Build a traffic engineering database from TE objects",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.Flags(), args)
			if err != nil {
				return err
			}
			ted, err := buildTed(data)
			if err != nil {
				return err
			}
			if outputFmt == formatText {
				ted.Print(cmd.OutOrStdout())
				return nil
			}
			return render(cmd.OutOrStdout(), outputFmt, tedView(ted))
		},
	}

	addInputFlags(tedCmd.Flags())
	return tedCmd
}

// buildTed applies TE objects in order; objects with the R flag withdraw their elements.
func buildTed(data []byte) (*table.LsTed, error) {
	objs, err := pcep.DecodeObjects(data, codecOpts...)
	if err != nil {
		return nil, err
	}
	ted := table.NewLsTed(1)
	for i, obj := range objs {
		te, ok := obj.(*pcep.TEObject)
		if !ok {
			cliLogger.Debug("skipping non-TE object", zap.Int("index", i), zap.Stringer("class", obj.Class()))
			continue
		}
		elems, err := te.TedElems()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		if te.RFlag() {
			ted.Remove(elems)
		} else {
			ted.Update(elems)
		}
	}
	return ted, nil
}

func tedView(ted *table.LsTed) map[string]any {
	nodes := []any{}
	for _, as := range ted.Nodes {
		for _, node := range as {
			links := []any{}
			for _, link := range node.Links {
				metrics := []any{}
				for _, metric := range link.Metrics {
					metrics = append(metrics, map[string]any{
						"type":  metric.Type.String(),
						"value": metric.Value,
					})
				}
				links = append(links, map[string]any{
					"localIP":    link.LocalIP.String(),
					"remoteIP":   link.RemoteIP.String(),
					"remoteNode": link.RemoteNode.RouterId,
					"metrics":    metrics,
				})
			}
			nodes = append(nodes, map[string]any{
				"asn":        node.Asn,
				"routerId":   node.RouterId,
				"isisAreaId": node.IsisAreaId,
				"hostname":   node.Hostname,
				"links":      links,
			})
		}
	}
	return map[string]any{"ted": nodes}
}
