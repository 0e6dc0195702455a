// Package diddoc implements the DID Document data model: pure
// transforms over a W3C DID Document shape, plus the did:web URL
// construction rule. No network I/O lives here — resolving a DID to a
// Document is an external collaborator's job.
package diddoc

import (
	"strings"

	"github.com/AetherLib/aether-atproto/atperr"
)

// AtprotoSigningKeyType is the verification-method fragment ATProto
// reserves for the repository signing key.
const AtprotoSigningKeyType = "#atproto"

// AtprotoPDSType is the service type a PDS advertises itself under.
const AtprotoPDSType = "AtprotoPersonalDataServer"

// VerificationMethod is one entry of a Document's verificationMethod list.
type VerificationMethod struct {
	ID                 string
	Type               string
	Controller         string
	PublicKeyMultibase string
}

// Service is one entry of a Document's service list.
type Service struct {
	ID              string
	Type            string
	ServiceEndpoint string
}

// Document is a DID Document: identity, key material, and service
// endpoints for a single DID subject.
type Document struct {
	ID                 string
	AlsoKnownAs        []string
	VerificationMethod []VerificationMethod
	Service            []Service
}

// Options configures Create/CreateWeb.
type Options struct {
	Handle      string // recorded as an at:// entry in AlsoKnownAs
	PDSEndpoint string
	SigningKey  string // multibase-encoded public key
	AlsoKnownAs []string
}

// Create assembles a Document for did from opts.
func Create(did string, opts Options) Document {
	doc := Document{ID: did}

	if opts.Handle != "" {
		doc.AlsoKnownAs = append(doc.AlsoKnownAs, "at://"+opts.Handle)
	}
	doc.AlsoKnownAs = append(doc.AlsoKnownAs, opts.AlsoKnownAs...)

	if opts.SigningKey != "" {
		doc.VerificationMethod = append(doc.VerificationMethod, VerificationMethod{
			ID:                 did + AtprotoSigningKeyType,
			Type:               "Multikey",
			Controller:         did,
			PublicKeyMultibase: opts.SigningKey,
		})
	}

	if opts.PDSEndpoint != "" {
		doc.Service = append(doc.Service, Service{
			ID:              "#atproto_pds",
			Type:            AtprotoPDSType,
			ServiceEndpoint: opts.PDSEndpoint,
		})
	}

	return doc
}

// CreateWeb is Create for a did:web subject: did = "did:web:" + domain.
func CreateWeb(domain string, opts Options) Document {
	return Create("did:web:"+domain, opts)
}

// GetPDSEndpoint returns the endpoint of doc's AtprotoPDSType service.
func GetPDSEndpoint(doc Document) (string, error) {
	svc, err := GetService(doc, AtprotoPDSType)
	if err != nil {
		return "", err
	}
	return svc.ServiceEndpoint, nil
}

// GetService returns the first service entry of the given type.
func GetService(doc Document, svcType string) (Service, error) {
	for _, s := range doc.Service {
		if s.Type == svcType {
			return s, nil
		}
	}
	return Service{}, atperr.New(atperr.KindLookup, atperr.CodeNotFound, "diddoc: no service of type "+svcType)
}

// GetHandle returns the handle of the first at:// entry of
// doc.AlsoKnownAs, with the at:// prefix removed.
func GetHandle(doc Document) (string, error) {
	for _, aka := range doc.AlsoKnownAs {
		if strings.HasPrefix(aka, "at://") {
			return strings.TrimPrefix(aka, "at://"), nil
		}
	}
	return "", atperr.New(atperr.KindLookup, atperr.CodeNotFound, "diddoc: no at:// handle in alsoKnownAs")
}

// GetSigningKey returns the first verification method whose id ends in
// #atproto.
func GetSigningKey(doc Document) (VerificationMethod, error) {
	for _, vm := range doc.VerificationMethod {
		if strings.HasSuffix(vm.ID, AtprotoSigningKeyType) {
			return vm, nil
		}
	}
	return VerificationMethod{}, atperr.New(atperr.KindLookup, atperr.CodeNotFound, "diddoc: no #atproto verification method")
}

// AddService returns a copy of doc with svc appended.
func AddService(doc Document, svc Service) Document {
	out := doc
	out.Service = append(append([]Service{}, doc.Service...), svc)
	return out
}

// UpdateSigningKey returns a copy of doc with its #atproto verification
// method's key replaced by publicKeyMultibase, or a new one appended if
// doc has none yet.
func UpdateSigningKey(doc Document, publicKeyMultibase string) Document {
	out := doc
	out.VerificationMethod = append([]VerificationMethod{}, doc.VerificationMethod...)

	for i, vm := range out.VerificationMethod {
		if strings.HasSuffix(vm.ID, AtprotoSigningKeyType) {
			out.VerificationMethod[i].PublicKeyMultibase = publicKeyMultibase
			return out
		}
	}

	out.VerificationMethod = append(out.VerificationMethod, VerificationMethod{
		ID:                 doc.ID + AtprotoSigningKeyType,
		Type:               "Multikey",
		Controller:         doc.ID,
		PublicKeyMultibase: publicKeyMultibase,
	})
	return out
}

// BuildDidWebURL implements the did:web URL construction rule: identifier
// is split on ':'; the first segment is the host, remaining segments
// (if any) become a path before the trailing did.json.
func BuildDidWebURL(identifier string) (string, error) {
	segments := strings.Split(identifier, ":")
	if segments[0] == "" {
		return "", atperr.New(atperr.KindFormat, atperr.CodeInvalidFormat, "diddoc: identifier has no host segment")
	}
	host := segments[0]
	if len(segments) == 1 {
		return "https://" + host + "/.well-known/did.json", nil
	}
	return "https://" + host + "/" + strings.Join(segments[1:], "/") + "/did.json", nil
}
