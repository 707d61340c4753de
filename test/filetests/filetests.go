// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package filetests houses a test harness for resolving pipeline documents and
asserting the expected output.
*/
package filetests

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"carvel.dev/pipetpl/pkg/files"
	"carvel.dev/pipetpl/pkg/orderedmap"
	"carvel.dev/pipetpl/pkg/pipeline"
	"carvel.dev/pipetpl/pkg/yamlfmt"
	"github.com/k14s/difflib"
)

const (
	fileHeaderPrefix = "#! "
	// DocumentPath is the pipeline document within each test case.
	DocumentPath = "dvc.yaml"
)

// EvaluatePipeline is the processing desired from the input files to the resolved document.
type EvaluatePipeline func(tree files.MemoryTree) (*orderedmap.Map, error)

// FileTests contain a suite of test cases, each described in a separate file, verifying pipeline resolution.
//
// Test cases:
// - are found within the directory at "PathToTests"
// - conventionally have a .pipetest extension
// - top-half holds the input files, each starting with a "#! <path>" line; bottom-half is the expected
// resolved document; divided by `+++` and a blank line.
//
// Expected output starting with `ERR:` indicates that expected output is an error message.
//
// For example:
//
//	#! params.yaml
//	lr: 0.1
//	#! dvc.yaml
//	stages:
//	  train:
//	    cmd: python train.py ${lr}
//	+++
//
//	stages:
//	  train:
//	    cmd: python train.py 0.1
//	    params:
//	    - params.yaml: [lr]
type FileTests struct {
	PathToTests string
	EvalFunc    EvaluatePipeline
}

// Run runs each test: enumerates each file within FileTests.PathToTests; splits and evaluates using FileTests.EvalFunc.
func (f FileTests) Run(t *testing.T) {
	var testFiles []string

	err := filepath.Walk(f.PathToTests, func(walkedPath string, fi os.FileInfo, err error) error {
		if err != nil || fi.IsDir() {
			return err
		}
		testFiles = append(testFiles, walkedPath)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to enumerate filetests: %s", err)
	}

	if f.EvalFunc == nil {
		f.EvalFunc = DefaultEvalPipeline(pipeline.Options{})
	}

	for _, filePath := range testFiles {
		filePath := filePath

		t.Run(filePath, func(t *testing.T) {
			contents, err := os.ReadFile(filePath)
			if err != nil {
				t.Fatal(err)
			}

			pieces := strings.SplitN(string(contents), "\n+++\n\n", 2)
			if len(pieces) != 2 {
				t.Fatalf("expected file %s to include +++ separator", filePath)
			}
			expectedStr := pieces[1]

			tree, err := ParseInputFiles(pieces[0])
			if err != nil {
				t.Fatalf("parsing input files: %s", err)
			}

			result, resultErr := f.EvalFunc(tree)

			if strings.HasPrefix(expectedStr, "ERR:") {
				if resultErr == nil {
					err = fmt.Errorf("expected resolve error, but did not receive it")
				} else {
					expectedStr = strings.TrimPrefix(expectedStr, "ERR:")
					expectedStr = strings.TrimPrefix(expectedStr, " ")
					err = f.expectEquals(
						TrimTrailingMultilineWhitespace(resultErr.Error()),
						TrimTrailingMultilineWhitespace(expectedStr))
				}
			} else {
				if resultErr != nil {
					err = fmt.Errorf("resolve error: %v", resultErr)
				} else {
					err = f.expectEqualDocs(result, expectedStr)
				}
			}

			if err != nil {
				t.Fatalf("%s", err)
			}
		})
	}
}

// DefaultEvalPipeline resolves the document at DocumentPath with opts.
func DefaultEvalPipeline(opts pipeline.Options) EvaluatePipeline {
	return func(tree files.MemoryTree) (*orderedmap.Map, error) {
		doc, err := files.NewLoader(tree).Load(DocumentPath)
		if err != nil {
			return nil, err
		}

		resolver, err := pipeline.NewDataResolver(tree, filepath.Dir(DocumentPath), doc, opts)
		if err != nil {
			return nil, err
		}

		return resolver.Resolve()
	}
}

// ParseInputFiles splits src into files, each introduced by a "#! <path>" line.
func ParseInputFiles(src string) (files.MemoryTree, error) {
	tree := files.MemoryTree{}
	var currPath string
	var currLines []string

	flush := func() {
		if currPath != "" {
			tree[filepath.Clean(currPath)] = []byte(strings.Join(currLines, "\n") + "\n")
		}
	}

	for _, line := range strings.Split(src, "\n") {
		if strings.HasPrefix(line, fileHeaderPrefix) {
			flush()
			currPath = strings.TrimSpace(strings.TrimPrefix(line, fileHeaderPrefix))
			currLines = nil
			continue
		}
		if currPath == "" {
			if strings.TrimSpace(line) != "" {
				return nil, fmt.Errorf("expected content to start with a '%s<path>' line", fileHeaderPrefix)
			}
			continue
		}
		currLines = append(currLines, line)
	}
	flush()

	return tree, nil
}

func (f FileTests) expectEqualDocs(result *orderedmap.Map, expectedStr string) error {
	expected, err := yamlfmt.DecodeMap([]byte(expectedStr))
	if err != nil {
		return fmt.Errorf("unmarshal expected: %v", err)
	}

	// compare through a round trip so both sides share number and container types
	resultBs, err := yamlfmt.Encode(result)
	if err != nil {
		return fmt.Errorf("marshal error: %v", err)
	}
	actual, err := yamlfmt.DecodeMap(resultBs)
	if err != nil {
		return fmt.Errorf("unmarshal result: %v", err)
	}

	if reflect.DeepEqual(expected, actual) {
		return nil
	}

	expectedBs, err := yamlfmt.Encode(expected)
	if err != nil {
		return fmt.Errorf("marshal error: %v", err)
	}

	diff := difflib.PPDiff(strings.Split(string(expectedBs), "\n"), strings.Split(string(resultBs), "\n"))
	return fmt.Errorf("not equal; diff expected...actual:\n%s", diff)
}

func (f FileTests) expectEquals(resultStr, expectedStr string) error {
	if resultStr != expectedStr {
		return fmt.Errorf("not equal\n\n### result %d chars:\n>>>%s<<<\n###expected %d chars:\n>>>%s<<<", len(resultStr), resultStr, len(expectedStr), expectedStr)
	}
	return nil
}

// TrimTrailingMultilineWhitespace returns a string with trailing whitespace trimmed from every line as well
// as trimmed trailing empty lines
func TrimTrailingMultilineWhitespace(s string) string {
	var trimmedLines []string
	for _, line := range strings.Split(s, "\n") {
		trimmedLine := strings.TrimRight(line, "\t ")
		trimmedLines = append(trimmedLines, trimmedLine)
	}
	multiline := strings.Join(trimmedLines, "\n")
	return strings.TrimRight(multiline, "\n")
}
