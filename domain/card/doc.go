// Package card implements the card model of Jest: the sixteen suit cards, the
// Joker and the optional extension cards.
//
// # Core Types
//
// Card: sealed interface implemented by *SuitCard, *Joker and *ExtensionCard.
// Cards are handled by pointer so that two cards with the same face are still
// distinct instances.
//
// TrophyType: the criterion a card stands for when it is drawn as a trophy.
// AssignTrophyType holds the fixed card to trophy table.
//
// Effect and Board: the scoring hook of extension cards. Effects are visited by
// the scoring engine and may toggle named flags or add a bonus.
//
// # Scripted Extensions
//
// LuaEffect runs an extension's effect from Lua source, so new extension
// cards can be loaded from configuration without recompiling.
package card
