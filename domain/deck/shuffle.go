package deck

import (
	"crypto/cipher"
	"math/big"

	"go.dedis.ch/kyber/v4/suites"
	"go.dedis.ch/kyber/v4/util/random"
)

// Rand is the randomness the deck shuffles with. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

var suite suites.Suite = suites.MustFind("Ed25519")

// CryptoRand draws uniform indices from the random stream of the Ed25519
// suite.
type CryptoRand struct {
	stream cipher.Stream
}

func NewCryptoRand() *CryptoRand {
	return &CryptoRand{stream: suite.RandomStream()}
}

// Intn returns a uniform integer in [0, n). It returns 0 when n <= 1.
func (r *CryptoRand) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	return int(random.Int(big.NewInt(int64(n)), r.stream).Int64())
}

// Shuffle runs a Fisher-Yates shuffle over the whole pile.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	d.logger.Debug("deck shuffled", "cards", len(d.cards))
}
