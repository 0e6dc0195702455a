// Package commit implements the signed, versioned repository snapshot
// that anchors an ATProto repository and chains its revisions.
package commit

import (
	"strings"

	"github.com/AetherLib/aether-atproto/atperr"
	"github.com/AetherLib/aether-atproto/cid"
	"github.com/AetherLib/aether-atproto/tid"
)

// CurrentVersion is the only repository commit version this module
// produces or accepts.
const CurrentVersion = 3

// Commit is one node in a repository's append-only commit chain.
type Commit struct {
	DID     string
	Version int
	Data    cid.CID // CID of the MST root
	Rev     tid.TID
	Prev    cid.CID // zero value if this is the first commit
	Sig     []byte  // nil if unsigned
}

// Options customizes Create/CreateNext.
type Options struct {
	Rev tid.TID // defaults to a freshly generated TID if zero
}

// Create constructs a new unsigned commit at CurrentVersion.
func Create(did string, data cid.CID, opts Options) (Commit, error) {
	rev := opts.Rev
	if rev == "" {
		next, err := tid.Next()
		if err != nil {
			return Commit{}, err
		}
		rev = next
	}
	return Commit{DID: did, Version: CurrentVersion, Data: data, Rev: rev}, nil
}

// CreateNext constructs a new unsigned commit that chains from prev.
func CreateNext(did string, data cid.CID, prev Commit, prevCID cid.CID, opts Options) (Commit, error) {
	c, err := Create(did, data, opts)
	if err != nil {
		return Commit{}, err
	}
	c.Prev = prevCID
	if tid.Compare(c.Rev, prev.Rev) <= 0 {
		return Commit{}, atperr.New(atperr.KindRepo, atperr.CodeInvalidRev, "commit: rev must strictly increase over prev")
	}
	return c, nil
}

// Validate checks the structural invariants of a commit: a well-formed
// DID-shaped string, CurrentVersion, a CID for Data, a valid TID for Rev,
// and Prev either absent or a CID.
func Validate(c Commit) error {
	if !strings.HasPrefix(c.DID, "did:") {
		return atperr.New(atperr.KindRepo, atperr.CodeInvalidDID, "commit: did must begin with 'did:'")
	}
	if c.Version != CurrentVersion {
		return atperr.New(atperr.KindRepo, atperr.CodeInvalidVersion, "commit: version must be 3")
	}
	if c.Data.IsZero() {
		return atperr.New(atperr.KindRepo, atperr.CodeInvalidDataCID, "commit: data must be a CID")
	}
	if err := tid.Valid(c.Rev); err != nil {
		return atperr.Wrap(atperr.KindRepo, atperr.CodeInvalidRev, "commit: rev is not a valid TID", err)
	}
	// Prev is optional; its zero value is valid (no prior commit).
	return nil
}

// CompareRevs is byte-wise string comparison of two commits' Rev values.
func CompareRevs(a, b Commit) int {
	return tid.Compare(a.Rev, b.Rev)
}
