package mst

import (
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/AetherLib/aether-atproto/atperr"
	"github.com/AetherLib/aether-atproto/cid"
)

// NodeEntry is one physical-layer entry: {key, value, tree, prefix_len}.
// KeySuffix + PrefixLen reconstruct Key against the previous entry's full
// key within the same Node.
type NodeEntry struct {
	PrefixLen int
	KeySuffix string
	Value     cid.CID
	Tree      cid.CID // subtree holding keys between this entry and the next, zero if none
}

// Node is one physical MST node: a layer number, a left subtree (for keys
// before the first entry), and a sorted run of entries each carrying an
// optional right-hand subtree pointer.
type Node struct {
	Layer   int
	Left    cid.CID
	Entries []NodeEntry
}

// wireNode is Node's DAG-CBOR wire shape.
type wireNode struct {
	Layer   int           `cbor:"l"`
	Left    string        `cbor:"x,omitempty"`
	Entries []wireNodeEntry `cbor:"e"`
}

type wireNodeEntry struct {
	PrefixLen int    `cbor:"p"`
	KeySuffix string `cbor:"k"`
	Value     string `cbor:"v"`
	Tree      string `cbor:"t,omitempty"`
}

func (n Node) marshal() ([]byte, error) {
	w := wireNode{Layer: n.Layer, Left: n.Left.String()}
	w.Entries = make([]wireNodeEntry, len(n.Entries))
	for i, e := range n.Entries {
		w.Entries[i] = wireNodeEntry{
			PrefixLen: e.PrefixLen,
			KeySuffix: e.KeySuffix,
			Value:     e.Value.String(),
			Tree:      e.Tree.String(),
		}
	}
	return cbor.Marshal(w)
}

func unmarshalNode(data []byte) (Node, error) {
	var w wireNode
	if err := cbor.Unmarshal(data, &w); err != nil {
		return Node{}, atperr.Wrap(atperr.KindCAS, atperr.CodeInvalidCID, "mst: malformed node bytes", err)
	}
	n := Node{Layer: w.Layer}
	if w.Left != "" {
		c, err := cid.Parse(w.Left)
		if err != nil {
			return Node{}, err
		}
		n.Left = c
	}
	n.Entries = make([]NodeEntry, len(w.Entries))
	for i, e := range w.Entries {
		ne := NodeEntry{PrefixLen: e.PrefixLen, KeySuffix: e.KeySuffix}
		v, err := cid.Parse(e.Value)
		if err != nil {
			return Node{}, err
		}
		ne.Value = v
		if e.Tree != "" {
			t, err := cid.Parse(e.Tree)
			if err != nil {
				return Node{}, err
			}
			ne.Tree = t
		}
		n.Entries[i] = ne
	}
	return n, nil
}

// NodeStore is the pluggable backing store for physical MST nodes: a
// minimal content-addressed Put/Get contract, immutable once written,
// storing Nodes instead of raw bytes.
type NodeStore interface {
	PutNode(n Node) (cid.CID, error)
	GetNode(id cid.CID) (Node, error)
}

// MemNodeStore is an in-memory NodeStore, the default and only backing
// store this module ships; a durable storage backend is an external
// collaborator's job.
type MemNodeStore struct {
	mu    sync.RWMutex
	nodes map[string]Node
}

// NewMemNodeStore returns an empty in-memory node store.
func NewMemNodeStore() *MemNodeStore {
	return &MemNodeStore{nodes: make(map[string]Node)}
}

func (s *MemNodeStore) PutNode(n Node) (cid.CID, error) {
	data, err := n.marshal()
	if err != nil {
		return cid.CID{}, atperr.Wrap(atperr.KindCAS, atperr.CodeInvalidCID, "mst: failed to encode node", err)
	}
	id, err := cid.FromData(data, cid.CodecDagCBOR)
	if err != nil {
		return cid.CID{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[id.String()] = n
	return id, nil
}

func (s *MemNodeStore) GetNode(id cid.CID) (Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[id.String()]
	if !ok {
		return Node{}, atperr.New(atperr.KindLookup, atperr.CodeNotFound, "mst: node not found")
	}
	return n, nil
}
