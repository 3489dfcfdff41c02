// Package ledger implements an append-only, hash-chained log of the events
// of a Jest match.
//
// # Core Components
//
// Blockchain: the log itself. Every block links to the previous one through
// its sha256 hash, so editing any recorded event breaks the chain.
//
// Block: one recorded jest.Event with its position, timestamp and hashes.
//
// # Usage
//
// Create a blockchain for a game and register it as a jest.Notifier; every
// event of the match is then appended as it happens. Verify can be called at
// any time, and WriteTo/Read move the whole chain to and from JSON.
package ledger
