// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package namespace

import (
	"fmt"
	"math"
	"strconv"

	"carvel.dev/pipetpl/pkg/orderedmap"
	"carvel.dev/pipetpl/pkg/yamlfmt"
)

// Stringify renders a value for splicing into a larger string.
// Containers are rendered in YAML flow style.
func Stringify(val interface{}) (string, error) {
	switch typedVal := val.(type) {
	case Node:
		return Stringify(typedVal.Raw())
	case nil:
		return "null", nil
	case bool:
		return strconv.FormatBool(typedVal), nil
	case string:
		return typedVal, nil
	case []byte:
		return string(typedVal), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", typedVal), nil
	case float32:
		return formatFloat(float64(typedVal), 32), nil
	case float64:
		return formatFloat(typedVal, 64), nil
	case *orderedmap.Map, []interface{}:
		return yamlfmt.FlowString(Unwrap(typedVal))
	default:
		return "", &TypeError{
			Value:   val,
			Message: fmt.Sprintf("Cannot convert value of type '%T' to string", val),
		}
	}
}

// formatFloat keeps a decimal point on integral values (3.0) and switches
// to exponent form for very small or large magnitudes (1e-05, 1e+16).
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, bitSize)
	}
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 1, bitSize)
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}
