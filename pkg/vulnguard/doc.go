// Package vulnguard provides types, interfaces, and helpers for working with
// the VulnGuard security-scanning API.
//
// # Overview
//
// The vulnguard package defines the domain types (e.g., Organization,
// Project, Dependency, License) and the interfaces for resource-oriented
// clients (e.g., OrganizationsClient, ProjectsClient). A concrete
// implementation of these clients is provided by the client package under
// internal/, exposed through New in this module's root-facing constructor.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/vulnguard-io/vulnguard-client/pkg/vgclient"
//	  "github.com/vulnguard-io/vulnguard-client/pkg/vulnguard"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := vgclient.New(&vulnguard.Config{Token: "..."})
//	  if err != nil { log.Fatal(err) }
//
//	  orgs, err := cli.Organizations().List(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = orgs
//	}
//
// # Two API surfaces
//
// The platform exposes a legacy attribute-style v1 API (bare JSON payloads)
// and a newer resource-oriented REST API with a data/links envelope, a
// mandatory version query parameter, and cursor-based pagination. Resource
// clients pick the right surface per call; CollectPages walks REST cursor
// links and merges page data while guarding against cursor loops.
//
// # Errors
//
// Non-success responses surface as *APIError after the retry policy is
// exhausted. Not-found, not-implemented, and validation conditions use
// package-level sentinel errors compatible with errors.Is.
package vulnguard
