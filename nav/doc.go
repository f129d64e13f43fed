// Package nav resolves locations against a declarative route tree and keeps
// the resulting stack of matched routes.
//
// The package provides:
//   - Path templates with named parameters and optional constraints
//   - Route trees made of leaf routes, shells and stateful shells
//   - A case-insensitive, first-match recursive matcher
//   - Match lists with push, remove and recomputation of location and params
//   - A codec that stores match lists as primitive trees
//   - Reverse routing by route name
//
// # Route Tree
//
// Build the tree from nodes and compile it once:
//
//	router, err := nav.NewRouter(
//		&nav.Route{
//			Path:    "/",
//			Builder: home,
//			Routes: []nav.Node{
//				&nav.Route{
//					Path:    "family/:fid",
//					Name:    "family",
//					Builder: family,
//					Routes: []nav.Node{
//						&nav.Route{Path: "person/:pid", Name: "person", Builder: person},
//					},
//				},
//			},
//		},
//	)
//
// Top-level paths start with "/", nested paths are relative. Shells group
// routes under a shared wrapper without consuming any part of the location.
// A StatefulShell splits its routes into branches that each keep their own
// navigation state.
//
// The tree is validated as a whole: empty paths, duplicated names, duplicated
// parameter names along a chain, empty shells and leaves that set both or
// neither of Builder and Redirect are all reported by NewRouter.
//
// # Matching Order
//
// Children are tried in declaration order, depth-first. The first chain that
// consumes the entire location wins, so route order is part of the API: a
// parameter route such as ":id" declared before a literal sibling "new"
// shadows it.
//
//	router.Match("/family/f2/person/p1", nil)
//	// matches "/", "family/:fid", "person/:pid"
//	// params: fid=f2, pid=p1
//	// full path: /family/:fid/person/:pid
//
// Literals match case-insensitively. Parameter values keep the case of the
// location: "/Family/F1" yields fid=F1.
//
// # Path Templates
//
// A parameter is a colon followed by a name, with an optional constraint:
//
//	users/:id
//	users/:id(int)
//	files/:name([a-z]+\.txt)
//
// Without a constraint a parameter captures one path segment. Available
// constraint macros:
//
//	uuid     - RFC 4122 UUID (e.g. 550e8400-e29b-41d4-a716-446655440000)
//	int      - unsigned integer (e.g. 42)
//	float    - decimal number (e.g. 3.14, 42, .5)
//	slug     - URL-safe slug (e.g. my-post-title)
//	alpha    - alphabetic characters (e.g. hello)
//	alphanum - alphanumeric characters (e.g. abc123)
//	date     - ISO 8601 date (e.g. 2024-01-15)
//	hex      - hexadecimal string (e.g. deadBEEF)
//	page     - 1-based page number (e.g. 3)
//	year     - four-digit year (e.g. 2024)
//	locale   - language tag (e.g. en, pt-BR)
//
// # Match Lists
//
// Match returns a *MatchList. Push appends an imperative match built with
// NewImperativeMatch; Remove truncates the list at a match, drops shells left
// without a leaf and recomputes the location from the remaining templates.
// Use PushKeys to issue page keys for imperative matches.
//
// # Persistence
//
// Codec encodes a match list into maps, slices and scalars under the key
// "matchList" and decodes it by running the matcher again. Data that no
// longer matches the tree decodes to nil.
//
// # Concurrency
//
// A Router is immutable and safe for concurrent use. Match lists and PushKeys
// belong to a single owner. Completion is the only type meant to be shared
// between goroutines.
package nav
