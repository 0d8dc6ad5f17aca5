package hand

// TrackingState is the only per-hand state that outlives a frame.
// The zero value is the start state: open hand, zero pitch.
type TrackingState struct {
	Closed      bool    `json:"closed"`
	FirstWristY float64 `json:"first_wrist_y"`
	PrevWristY  float64 `json:"prev_wrist_y"`
	Pitch       float64 `json:"pitch"`
}

// IntegratePitch advances st by one frame and returns the pitch in degrees.
//
// While the fist is closed, vertical wrist motion since the previous frame is
// scaled by p.PitchSensitivity and added to the accumulator. Closing the fist
// rebases the wrist reference but keeps the accumulator; opening it freezes
// the accumulator. Frames must be fed in capture order.
func IntegratePitch(st *TrackingState, wristY float64, fist bool, p Params) float64 {
	switch {
	case fist && !st.Closed:
		st.FirstWristY = wristY
		st.PrevWristY = wristY
		st.Closed = true
	case !fist && st.Closed:
		st.Closed = false
	}

	if st.Closed {
		dy := wristY - st.PrevWristY
		st.Pitch = NormalizeAngle(st.Pitch + dy*p.PitchSensitivity)
		st.PrevWristY = wristY
	}
	return st.Pitch
}
