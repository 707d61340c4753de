// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"carvel.dev/pipetpl/pkg/cmd/ui"
	"carvel.dev/pipetpl/pkg/yamlfmt"
)

func (o *ResolveOptions) Print(out ResolveOutput, ui ui.UI) error {
	var bs []byte
	var err error

	switch o.Output {
	case OutputJSON:
		bs, err = yamlfmt.EncodeJSON(out.Doc)
	default:
		bs, err = yamlfmt.Encode(out.Doc)
	}
	if err != nil {
		return err
	}

	ui.Printf("%s", bs)
	if len(bs) > 0 && bs[len(bs)-1] != '\n' {
		ui.Printf("\n")
	}
	return nil
}
