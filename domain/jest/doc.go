// Package jest implements the rules engine of Jest, a trick-and-collection card
// game for three or four players.
//
// # Core Types
//
// Game: the match aggregate. It owns the deck, the players, the trophies, the
// variant and the round counter, and runs rounds until the deck is exhausted.
//
// Round: one deal/offer/choose cycle, driven as a state machine
// Created → Dealing → Offering → DeterminingStarter → Choosing → Ending → Over.
//
// Player: hand, Jest (the pile of collected cards), current Offer and score.
// A player is either human, in which case every decision comes from a
// DecisionProvider, or virtual, in which case a Strategy decides.
//
// Offer: the face-up/face-down pair a player exposes each turn.
//
// # Collaborators
//
// DecisionProvider: consumed, answers the decisions of human players.
//
// Notifier: exposed, receives an Event at every step of the match. Events are
// value copies, observers cannot alter the match through them.
//
// Snapshot and Restore: expose the whole Game aggregate, round counter
// included, as a JSON document.
//
// # Concurrency
//
// A Game is driven from a single goroutine. Every decision is a synchronous
// call; there is no overlap between players.
package jest
