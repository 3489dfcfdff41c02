package jest

type EventKind string

const (
	EventRoundStarted      EventKind = "round_started"
	EventCardsDealt        EventKind = "cards_dealt"
	EventOfferPhaseStarted EventKind = "offer_phase_started"
	EventOfferMade         EventKind = "offer_made"
	EventStartingPlayer    EventKind = "starting_player"
	EventTurn              EventKind = "turn"
	EventCardTaken         EventKind = "card_taken"
	EventRoundEnded        EventKind = "round_ended"
	EventDeckEmpty         EventKind = "deck_empty"
	EventTrophiesRevealed  EventKind = "trophies_revealed"
	EventTrophyAwarded     EventKind = "trophy_awarded"
	EventScores            EventKind = "scores"
	EventWinners           EventKind = "winners"
	EventWarning           EventKind = "warning"
)

// Event describes one step of a match. Cards are rendered as strings and
// face-down cards are never disclosed, except through EventCardTaken to
// observers of the whole table.
type Event struct {
	Kind    EventKind      `json:"kind"`
	Round   int            `json:"round,omitempty"`
	Player  string         `json:"player,omitempty"`
	Target  string         `json:"target,omitempty"`
	Card    string         `json:"card,omitempty"`
	FaceUp  bool           `json:"face_up,omitempty"`
	Cards   []string       `json:"cards,omitempty"`
	Scores  map[string]int `json:"scores,omitempty"`
	Winners []string       `json:"winners,omitempty"`
	Message string         `json:"message,omitempty"`
}

type Notifier interface {
	Notify(e Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(e Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

// Notifiers fans an event out to every notifier, in order. Each one receives
// its own copy of the slices and maps in the event.
type Notifiers []Notifier

func (ns Notifiers) Notify(e Event) {
	for _, n := range ns {
		if n != nil {
			n.Notify(e.clone())
		}
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(Event) {}

func (e Event) clone() Event {
	if e.Cards != nil {
		e.Cards = append([]string(nil), e.Cards...)
	}
	if e.Winners != nil {
		e.Winners = append([]string(nil), e.Winners...)
	}
	if e.Scores != nil {
		scores := make(map[string]int, len(e.Scores))
		for k, v := range e.Scores {
			scores[k] = v
		}
		e.Scores = scores
	}
	return e
}
