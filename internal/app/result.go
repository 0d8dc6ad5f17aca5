package app

import (
	"time"

	"github.com/ayusman/mudra/internal/hand"
)

// Result is what the loop publishes for every processed frame.
type Result struct {
	Seq    int64     `json:"seq"`
	Time   time.Time `json:"time"`
	Hand   bool      `json:"hand"`
	Motion bool      `json:"motion"`
	// Label is the signal label, or NONE without a hand.
	Label string `json:"label"`
	// Text is the overlay string; empty without a hand.
	Text  string      `json:"text"`
	Frame *hand.Frame `json:"frame,omitempty"`
}

// Signal returns the composed signal, or a NONE signal without a hand.
func (r Result) Signal() hand.Signal {
	if r.Frame == nil {
		return hand.Signal{Kind: hand.SignalNone}
	}
	return r.Frame.Signal
}

func newResult(seq int64, f hand.Frame, ok, moved bool) Result {
	r := Result{
		Seq:    seq,
		Time:   time.Now(),
		Hand:   ok,
		Motion: moved,
		Label:  "NONE",
	}
	if ok {
		r.Frame = &f
		r.Label = f.Signal.Label()
		r.Text = f.Signal.Text()
	}
	return r
}
