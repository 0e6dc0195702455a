package mst

import "github.com/AetherLib/aether-atproto/cid"

// BuildTree realises m's physical, layered, content-addressed form in
// store and returns the CID of its root node: entries split into subtrees
// at each layer boundary. An empty MST has no root node and returns the
// zero CID.
func BuildTree(m MST, store NodeStore) (cid.CID, error) {
	entries := m.List()
	if len(entries) == 0 {
		return cid.CID{}, nil
	}
	return buildAndStore(entries, store)
}

// depthEntry pairs an Entry with its precomputed placement depth.
type depthEntry struct {
	Entry
	depth int
}

func withDepths(entries []Entry) []depthEntry {
	out := make([]depthEntry, len(entries))
	for i, e := range entries {
		out[i] = depthEntry{Entry: e, depth: CalculateKeyDepth(e.Key)}
	}
	return out
}

func maxDepth(entries []depthEntry) int {
	max := 0
	for _, e := range entries {
		if e.depth > max {
			max = e.depth
		}
	}
	return max
}

func buildAndStore(entries []Entry, store NodeStore) (cid.CID, error) {
	withD := withDepths(entries)
	node, err := buildNode(withD, store)
	if err != nil {
		return cid.CID{}, err
	}
	return store.PutNode(node)
}

// buildNode partitions entries (already depth-annotated) into the
// highest-layer entries present and the runs of lower-layer entries that
// fall between/around them, recursing to build each run as a subtree.
func buildNode(entries []depthEntry, store NodeStore) (Node, error) {
	layer := maxDepth(entries)

	var atLayer []depthEntry
	var gaps [][]depthEntry
	var current []depthEntry
	for _, e := range entries {
		if e.depth == layer {
			gaps = append(gaps, current)
			current = nil
			atLayer = append(atLayer, e)
		} else {
			current = append(current, e)
		}
	}
	gaps = append(gaps, current)

	node := Node{Layer: layer}

	if len(gaps[0]) > 0 {
		left, err := buildSubtree(gaps[0], store)
		if err != nil {
			return Node{}, err
		}
		node.Left = left
	}

	prevKey := ""
	for i, e := range atLayer {
		prefixLen := commonPrefixLen(prevKey, e.Key)
		ne := NodeEntry{
			PrefixLen: prefixLen,
			KeySuffix: e.Key[prefixLen:],
			Value:     e.Value,
		}
		gapAfter := gaps[i+1]
		if len(gapAfter) > 0 {
			right, err := buildSubtree(gapAfter, store)
			if err != nil {
				return Node{}, err
			}
			ne.Tree = right
		}
		node.Entries = append(node.Entries, ne)
		prevKey = e.Key
	}

	return node, nil
}

func buildSubtree(entries []depthEntry, store NodeStore) (cid.CID, error) {
	node, err := buildNode(entries, store)
	if err != nil {
		return cid.CID{}, err
	}
	return store.PutNode(node)
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// reconstructKey inverts the prefix compression applied in buildNode,
// given the previous full key at the same layer.
func reconstructKey(prevKey string, e NodeEntry) string {
	return prevKey[:e.PrefixLen] + e.KeySuffix
}
