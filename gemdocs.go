// Package gemdocs keeps a locally queryable mirror of a remote documentation
// corpus. It crawls a manifest of titled links, extracts readable text from
// each page, stores pages whose content changed, and answers keyword search
// and exact-title lookups against the stored corpus.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, http/, mcp/).
package gemdocs
