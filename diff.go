package nitro

// Change records both sides of a value that differs between two trees.
type Change struct {
	Old any
	New any
}

// Delta is the result of a structural diff: dotted paths present only
// in the new tree, only in the old tree, and present in both with
// unequal values. The three sets are pairwise disjoint by
// construction; equal values are omitted. When an entire subtree
// appears or disappears the whole subtree is surfaced at its own path
// rather than one entry per leaf.
type Delta struct {
	Added   map[string]any
	Removed map[string]any
	Changed map[string]Change
}

// Empty reports a delta with no differences.
func (d *Delta) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// diffValues computes the delta between two trees. Both inputs are
// cycle-checked as they are copied into the result, so a cyclic input
// fails rather than recursing forever.
func diffValues(old, new any) (*Delta, error) {
	d := &Delta{
		Added:   map[string]any{},
		Removed: map[string]any{},
		Changed: map[string]Change{},
	}
	if err := diffWalk(nil, old, new, d); err != nil {
		return nil, err
	}
	return d, nil
}

func diffWalk(prefix Path, old, new any, d *Delta) error {
	om, oldIsMap := old.(map[string]any)
	nm, newIsMap := new.(map[string]any)
	if oldIsMap && newIsMap {
		keys := make(map[string]any, len(om)+len(nm))
		for k := range om {
			keys[k] = nil
		}
		for k := range nm {
			keys[k] = nil
		}
		for _, k := range sortedKeys(keys) {
			p := append(prefix, k)
			ov, oldHas := om[k]
			nv, newHas := nm[k]
			switch {
			case !oldHas:
				cl, err := deepClone(nv, cycleGuard{})
				if err != nil {
					return err
				}
				d.Added[p.String()] = cl
			case !newHas:
				cl, err := deepClone(ov, cycleGuard{})
				if err != nil {
					return err
				}
				d.Removed[p.String()] = cl
			default:
				if err := diffWalk(p, ov, nv, d); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if equalValues(old, new) {
		return nil
	}
	oc, err := deepClone(old, cycleGuard{})
	if err != nil {
		return err
	}
	nc, err := deepClone(new, cycleGuard{})
	if err != nil {
		return err
	}
	d.Changed[prefix.String()] = Change{Old: oc, New: nc}
	return nil
}
