// Package scoring computes the score of a Jest.
//
// Standard runs two passes over the cards. The census pass buckets suit cards
// by suit, counts Hearts, notes the Joker and lets extension effects raise
// flags. The scoring pass then values every card under the color rules and
// adds the black pair and lone Joker bonuses.
//
// Reverse wraps another Visitor and negates its total.
package scoring
