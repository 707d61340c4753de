// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package pipeline expands a templated pipeline document into concrete stages.

A DataResolver loads the global parameters (the "use" file, params.yaml by
default, plus "vars"), then resolves every entry under "stages":

	stages:
	  train:
	    foreach: ${models}
	    do:
	      cmd: python train.py --name ${item.name} --lr ${lr}

Each generated stage gets a "params" list naming every parameter file key
that its definition read.
*/
package pipeline
