package mst

import "github.com/AetherLib/aether-atproto/cid"

// Hydrate walks the physical node tree rooted at root and rebuilds the
// flat ordered-map MST it represents. It exists to prove the physical
// (layered) and semantic (flat) forms agree: Hydrate(BuildTree(m, s), s)
// must equal m for every m.
func Hydrate(store NodeStore, root cid.CID) (MST, error) {
	if root.IsZero() {
		return New(), nil
	}
	var out MST
	if err := walk(store, root, func(e Entry) {
		out = out.Add(e.Key, e.Value)
	}); err != nil {
		return MST{}, err
	}
	return out, nil
}

func walk(store NodeStore, nodeCID cid.CID, emit func(Entry)) error {
	node, err := store.GetNode(nodeCID)
	if err != nil {
		return err
	}

	if !node.Left.IsZero() {
		if err := walk(store, node.Left, emit); err != nil {
			return err
		}
	}

	prevKey := ""
	for _, e := range node.Entries {
		key := reconstructKey(prevKey, e)
		emit(Entry{Key: key, Value: e.Value})
		if !e.Tree.IsZero() {
			if err := walk(store, e.Tree, emit); err != nil {
				return err
			}
		}
		prevKey = key
	}
	return nil
}
