// Package npm provides an HTTP client for the npm registry API.
//
// # Overview
//
// netscore accepts npm package URLs but scores the GitHub repository behind
// them. This package fetches the latest published manifest from
// https://registry.npmjs.org and locates that repository.
//
// # Usage
//
//	client := npm.NewClient(c, 24*time.Hour)
//	url, err := client.ResolveRepository(ctx, "express")
//	// url == "https://github.com/expressjs/express"
//
// # Resolution Order
//
// [Client.ResolveRepository] checks the manifest's "repository", "homepage",
// and "bugs" fields in that order. Each may be a string or an object with a
// "url" key; git+, ssh and "github:owner/repo" forms are normalized. Packages
// whose fields point only at non-GitHub hosts yield [ErrNoRepository].
//
// Scoped names (@scope/name) are path-escaped as the registry expects.
package npm
