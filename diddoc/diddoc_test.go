package diddoc

import "testing"

func TestCreateAssemblesDocument(t *testing.T) {
	doc := Create("did:plc:z72i7hdynmk6r22z27h6tvur", Options{
		Handle:      "alice.example.com",
		PDSEndpoint: "https://pds.example.com",
		SigningKey:  "zQ3shXjCR9CdkQhvQgHkMZcKHdcnPzrUhrCzDmYFeMDnrwCUB",
	})

	if doc.ID != "did:plc:z72i7hdynmk6r22z27h6tvur" {
		t.Errorf("ID = %q", doc.ID)
	}
	handle, err := GetHandle(doc)
	if err != nil {
		t.Fatalf("GetHandle: %v", err)
	}
	if handle != "alice.example.com" {
		t.Errorf("GetHandle = %q, want %q", handle, "alice.example.com")
	}
	endpoint, err := GetPDSEndpoint(doc)
	if err != nil {
		t.Fatalf("GetPDSEndpoint: %v", err)
	}
	if endpoint != "https://pds.example.com" {
		t.Errorf("GetPDSEndpoint = %q", endpoint)
	}
	key, err := GetSigningKey(doc)
	if err != nil {
		t.Fatalf("GetSigningKey: %v", err)
	}
	if key.ID != doc.ID+AtprotoSigningKeyType {
		t.Errorf("signing key id = %q", key.ID)
	}
}

func TestCreateWebDerivesDIDFromDomain(t *testing.T) {
	doc := CreateWeb("example.com", Options{})
	if doc.ID != "did:web:example.com" {
		t.Errorf("ID = %q, want %q", doc.ID, "did:web:example.com")
	}
}

func TestGetServiceNotFound(t *testing.T) {
	doc := Create("did:plc:abc", Options{})
	if _, err := GetService(doc, AtprotoPDSType); err == nil {
		t.Fatalf("expected error for a document with no services")
	}
}

func TestAddServiceIsImmutable(t *testing.T) {
	doc := Create("did:plc:abc", Options{})
	updated := AddService(doc, Service{ID: "#extra", Type: "SomeService", ServiceEndpoint: "https://example.com"})
	if len(doc.Service) != 0 {
		t.Errorf("original document was mutated, len(Service) = %d", len(doc.Service))
	}
	if len(updated.Service) != 1 {
		t.Fatalf("expected 1 service on the updated document, got %d", len(updated.Service))
	}
}

func TestUpdateSigningKeyReplacesExisting(t *testing.T) {
	doc := Create("did:plc:abc", Options{SigningKey: "zOldKey"})
	updated := UpdateSigningKey(doc, "zNewKey")

	key, err := GetSigningKey(updated)
	if err != nil {
		t.Fatalf("GetSigningKey: %v", err)
	}
	if key.PublicKeyMultibase != "zNewKey" {
		t.Errorf("PublicKeyMultibase = %q, want zNewKey", key.PublicKeyMultibase)
	}

	original, err := GetSigningKey(doc)
	if err != nil {
		t.Fatalf("GetSigningKey(original): %v", err)
	}
	if original.PublicKeyMultibase != "zOldKey" {
		t.Errorf("original document was mutated: %q", original.PublicKeyMultibase)
	}
}

func TestBuildDidWebURLRootDomain(t *testing.T) {
	url, err := BuildDidWebURL("example.com")
	if err != nil {
		t.Fatalf("BuildDidWebURL: %v", err)
	}
	if url != "https://example.com/.well-known/did.json" {
		t.Errorf("URL = %q", url)
	}
}

func TestBuildDidWebURLWithPath(t *testing.T) {
	url, err := BuildDidWebURL("example.com:user:alice")
	if err != nil {
		t.Fatalf("BuildDidWebURL: %v", err)
	}
	if url != "https://example.com/user/alice/did.json" {
		t.Errorf("URL = %q", url)
	}
}

func TestBuildDidWebURLRejectsEmptyHost(t *testing.T) {
	if _, err := BuildDidWebURL(""); err == nil {
		t.Fatalf("expected error for an empty identifier")
	}
}
