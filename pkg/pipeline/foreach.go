// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"fmt"

	"carvel.dev/pipetpl/pkg/namespace"
	"carvel.dev/pipetpl/pkg/orderedmap"
	"carvel.dev/pipetpl/pkg/yamlfmt"
)

const (
	itemKey = "item"
	keyKey  = "key"
)

type iteration struct {
	value  interface{}
	key    interface{}
	hasKey bool
}

func (r *DataResolver) foreach(ctx *namespace.Context, name string, foreachData, body interface{}) ([]resolvedStage, error) {
	typedBody, ok := body.(*orderedmap.Map)
	if !ok {
		return nil, newDefinitionError("Expected '%s' to be a map, but was %s", DoKwd, yamlfmt.TypeName(body))
	}

	iterable, err := namespace.Resolve(foreachData, ctx, false)
	if err != nil {
		return nil, err
	}

	iterations, err := iterationsOf(iterable)
	if err != nil {
		return nil, err
	}
	if len(iterations) == 0 {
		r.opts.Logger.Warnf("Stage %s has an empty '%s', no stages were generated", name, ForeachKwd)
	}

	var result []resolvedStage

	for _, iter := range iterations {
		iterCtx := ctx.Clone()

		err := iterCtx.SetItem(itemKey, iter.value)
		if err != nil {
			return nil, err
		}

		suffixVal := iter.value
		if iter.hasKey {
			err := iterCtx.SetItem(keyKey, iter.key)
			if err != nil {
				return nil, err
			}
			suffixVal = iter.key
		}

		suffix, err := namespace.Stringify(suffixVal)
		if err != nil {
			return nil, err
		}

		stage, err := r.resolveStage(iterCtx, fmt.Sprintf("%s-%s", name, suffix), typedBody, true)
		if err != nil {
			return nil, err
		}
		result = append(result, stage)
	}

	return result, nil
}

func iterationsOf(iterable interface{}) ([]iteration, error) {
	var result []iteration

	switch typedIterable := iterable.(type) {
	case *namespace.List:
		for _, item := range typedIterable.Items() {
			result = append(result, iteration{value: item})
		}

	case []interface{}:
		for _, item := range typedIterable {
			result = append(result, iteration{value: item})
		}

	case *namespace.Dict:
		for _, key := range typedIterable.Keys() {
			item, _ := typedIterable.Get(key)
			result = append(result, iteration{value: item, key: key, hasKey: true})
		}

	case *orderedmap.Map:
		typedIterable.Iterate(func(k, v interface{}) {
			result = append(result, iteration{value: v, key: k, hasKey: true})
		})

	default:
		return nil, &namespace.TypeError{
			Value: iterable,
			Message: fmt.Sprintf("Expected '%s' to be a list or a map, but got type of %s",
				ForeachKwd, yamlfmt.TypeName(namespace.Unwrap(iterable))),
		}
	}

	return result, nil
}
