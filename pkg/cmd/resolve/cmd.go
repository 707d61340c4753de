// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"fmt"
	"time"

	"carvel.dev/pipetpl/pkg/cmd/ui"
	"carvel.dev/pipetpl/pkg/files"
	"carvel.dev/pipetpl/pkg/orderedmap"
	"carvel.dev/pipetpl/pkg/pipeline"
	"github.com/spf13/cobra"
)

const (
	OutputYAML = "yaml"
	OutputJSON = "json"
)

type ResolveOptions struct {
	Debug             bool
	File              string
	Output            string
	Jobs              int
	DefaultParamsFile string
}

type ResolveInput struct {
	Tree files.Tree
	// Path of the document within Tree
	Path string
	Doc  *orderedmap.Map
}

type ResolveOutput struct {
	Doc *orderedmap.Map
	Err error
}

func NewOptions() *ResolveOptions {
	return &ResolveOptions{
		File:              "dvc.yaml",
		Output:            OutputYAML,
		Jobs:              1,
		DefaultParamsFile: pipeline.DefaultParamsFile,
	}
}

func NewCmd(o *ResolveOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resolve",
		Aliases: []string{"r"},
		Short:   "Expand templated pipeline stages",
		RunE:    func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	cmd.Flags().StringVarP(&o.File, "file", "f", o.File, "Pipeline document (use '-' for stdin)")
	cmd.Flags().StringVarP(&o.Output, "output", "o", o.Output, "Output format (yaml, json)")
	cmd.Flags().IntVarP(&o.Jobs, "jobs", "j", o.Jobs, "Number of stages resolved concurrently")
	cmd.Flags().StringVar(&o.DefaultParamsFile, "params-file", o.DefaultParamsFile,
		"Parameters file used when the document does not declare 'use'")
	return cmd
}

func (o *ResolveOptions) Run() error {
	tty := ui.NewTTY(o.Debug)
	t1 := time.Now()

	defer func() {
		tty.Debugf("total: %s\n", time.Now().Sub(t1))
	}()

	err := o.validate()
	if err != nil {
		return err
	}

	in, err := o.Input()
	if err != nil {
		return err
	}

	out := o.RunWithInput(in, tty)
	if out.Err != nil {
		return out.Err
	}

	return o.Print(out, tty)
}

func (o *ResolveOptions) RunWithInput(in ResolveInput, ui ui.UI) ResolveOutput {
	resolver, err := pipeline.NewDataResolver(in.Tree, documentDir(in.Path), in.Doc, pipeline.Options{
		Logger:            uiLogger{ui},
		Parallelism:       o.Jobs,
		DefaultParamsFile: o.DefaultParamsFile,
	})
	if err != nil {
		return ResolveOutput{Err: fmt.Errorf("Resolving '%s': %w", in.Path, err)}
	}

	doc, err := resolver.Resolve()
	if err != nil {
		return ResolveOutput{Err: fmt.Errorf("Resolving '%s': %w", in.Path, err)}
	}

	return ResolveOutput{Doc: doc}
}

func (o *ResolveOptions) validate() error {
	switch o.Output {
	case OutputYAML, OutputJSON:
	default:
		return fmt.Errorf("Expected output format to be '%s' or '%s', but was '%s'", OutputYAML, OutputJSON, o.Output)
	}
	if o.Jobs < 1 {
		return fmt.Errorf("Expected jobs to be at least 1, but was %d", o.Jobs)
	}
	return nil
}

// uiLogger terminates each message with a newline as the ui does not.
type uiLogger struct {
	ui ui.UI
}

func (l uiLogger) Debugf(str string, args ...interface{}) {
	l.ui.Debugf(str+"\n", args...)
}

func (l uiLogger) Warnf(str string, args ...interface{}) {
	l.ui.Warnf("Warning: "+str+"\n", args...)
}
