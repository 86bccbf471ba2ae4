// Package vgclient provides the primary entry point for constructing a
// VulnGuard API client that implements the vulnguard.Client interface.
//
// It layers endpoint normalization and the HTTP transport on top of the
// resource interfaces and types defined in the vulnguard package. Most
// applications should import vgclient to build a client, then use the
// returned vulnguard.Client to access resource-specific clients, for example
// Organizations(), Projects(), Issues(), etc.
//
// Quick start
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
//
//	  cli, err := vgclient.NewWithToken("vg_token_...")
//	  if err != nil { log.Fatal(err) }
//
//	  orgs, err := cli.Organizations().List(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = orgs
//	}
//
// Self-hosted installations override the endpoints through the Config:
//
//	cli, err := vgclient.New(&vulnguard.Config{
//	  Token:           "vg_token_...",
//	  APIEndpoint:     "https://vulnguard.internal.example.com/v1",
//	  RestAPIEndpoint: "https://vulnguard.internal.example.com/rest",
//	})
package vgclient
