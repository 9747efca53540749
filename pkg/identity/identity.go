// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package identity generates the identifiers used across the literary catalogue.

Two independent modes exist:

  - Deterministic: a UUIDv5 (RFC 4122 §4.3, SHA-1) derived from a canonical
    string. Authors, publishers and chapters use it, so two entities with the
    same defining attributes share one id.
  - Opaque: a random UUIDv4. Paragraphs and sentences use it, so every resync
    hands out fresh ids.

The generator never rewrites the canonical string it is given. Callers that
want case or whitespace insensitivity must normalize before building the DN.
The one exception is [NamespaceDNS], where hostnames are lower-cased because
DNS names are case-insensitive.
*/
package identity

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Namespace names one of the RFC 4122 predefined name spaces.
type Namespace string

const (
	NamespaceDNS  Namespace = "dns"
	NamespaceURL  Namespace = "url"
	NamespaceOID  Namespace = "oid"
	NamespaceX500 Namespace = "x500"
)

// maxHostnameLength is the RFC 1035 limit for a full domain name.
const maxHostnameLength = 253

var (
	// hostnameRegex matches dot-separated LDH labels of 1 to 63 characters.
	hostnameRegex = regexp.MustCompile(`^(?i)[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?(?:\.[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?)*$`)
	// oidRegex matches dotted-decimal object identifiers with at least two arcs.
	oidRegex = regexp.MustCompile(`^[0-2](?:\.(?:0|[1-9][0-9]*))+$`)
)

// ErrInvalidInputFormat is matched by every [FormatError].
var ErrInvalidInputFormat = errors.New("identity: invalid input format")

// FormatError reports a value that is not well-formed for its namespace.
type FormatError struct {
	Value     string
	Namespace Namespace
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("identity: %q is not a valid %s value", e.Value, e.Namespace)
}

// Is makes errors.Is(err, ErrInvalidInputFormat) succeed.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidInputFormat
}

// ParseNamespace resolves a namespace name, ignoring case.
func ParseNamespace(name string) (Namespace, error) {
	switch namespace := Namespace(strings.ToLower(strings.TrimSpace(name))); namespace {
	case NamespaceDNS, NamespaceURL, NamespaceOID, NamespaceX500:
		return namespace, nil
	}
	return "", fmt.Errorf("identity: unknown namespace %q", name)
}

// # Deterministic Identity

// Deterministic derives a UUIDv5 from a canonical distinguished-name string
// in the X.500 namespace.
func Deterministic(canonical string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceX500, []byte(canonical))
}

// ForNamespace validates value for the given namespace and derives its UUIDv5.
//
// Malformed hostnames, URLs and OIDs fail with a [*FormatError]. X.500 values
// are canonical strings and are hashed verbatim.
func ForNamespace(value string, namespace Namespace) (uuid.UUID, error) {
	switch namespace {
	case NamespaceDNS:
		if !isHostname(value) {
			return uuid.Nil, &FormatError{Value: value, Namespace: namespace}
		}
		return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(strings.ToLower(value))), nil

	case NamespaceURL:
		if !isURL(value) {
			return uuid.Nil, &FormatError{Value: value, Namespace: namespace}
		}
		return uuid.NewSHA1(uuid.NameSpaceURL, []byte(value)), nil

	case NamespaceOID:
		if !oidRegex.MatchString(value) {
			return uuid.Nil, &FormatError{Value: value, Namespace: namespace}
		}
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(value)), nil

	case NamespaceX500:
		return Deterministic(value), nil
	}

	return uuid.Nil, fmt.Errorf("identity: unknown namespace %q", namespace)
}

// # Opaque Identity

// NewOpaque returns a random UUIDv4 carrying no relation to any attribute.
//
// It panics only if the OS random source fails.
func NewOpaque() uuid.UUID {
	return uuid.New()
}

// # Validation Helpers

func isHostname(value string) bool {
	return len(value) <= maxHostnameLength && hostnameRegex.MatchString(value)
}

func isURL(value string) bool {
	if strings.ContainsAny(value, " \t\r\n") {
		return false
	}
	parsed, err := url.Parse(value)
	return err == nil && parsed.Scheme != "" && parsed.Host != ""
}
