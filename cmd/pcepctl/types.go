// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package main

import (
	"github.com/spf13/cobra"

	"github.com/nttcom/pcepobj/pkg/packet/pcep"
)

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the sub-object, TLV and sub-TLV types understood by the codec",
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(cmd.OutOrStdout(), outputFmt, typesView())
		},
	}
}

func typesView() map[string]any {
	subobjects := []any{}
	for _, t := range pcep.SubobjectTypes() {
		subobjects = append(subobjects, map[string]any{"code": uint8(t), "name": t.String()})
	}
	tlvs := []any{}
	for _, t := range pcep.TLVTypes() {
		subTLVs := []any{}
		for _, st := range pcep.SubTLVTypes(t) {
			subTLVs = append(subTLVs, map[string]any{"code": uint16(st), "name": st.String()})
		}
		tlvs = append(tlvs, map[string]any{"code": uint16(t), "name": t.String(), "subTLVs": subTLVs})
	}
	return map[string]any{
		"eroSubobjects": subobjects,
		"teTLVs":        tlvs,
	}
}
