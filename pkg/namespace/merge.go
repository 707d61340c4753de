// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package namespace

// MergeUpdate merges sources into d from left to right. Nested dicts are
// merged key by key; any other collision is a ConflictError unless
// overwrite is set, in which case the later value wins. Merged nodes keep
// the provenance they had in their source.
func (d *Dict) MergeUpdate(overwrite bool, sources ...*Dict) error {
	for _, src := range sources {
		if src == nil {
			continue
		}
		if err := d.merge(src, overwrite); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dict) merge(update *Dict, overwrite bool) error {
	for _, key := range update.Keys() {
		val, _ := update.Get(key)
		existing, found := d.Get(key)

		if existingDict, ok := existing.(*Dict); ok {
			if valDict, ok := val.(*Dict); ok {
				if err := existingDict.merge(valDict, overwrite); err != nil {
					return err
				}
				continue
			}
		}

		if found && !overwrite {
			return newConflictError(key,
				"Cannot overwrite as key '%s' already exists in %s", key, describe(d))
		}

		d.items.Set(key, val.deepCopy())
	}
	return nil
}
