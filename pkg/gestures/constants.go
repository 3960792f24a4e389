package gestures

import "time"

// DefaultTouchSlop is the distance, in logical pixels, a pointer may travel
// before a recognizer that cares about position stability (tap, drag)
// treats the motion as intentional rather than jitter.
const DefaultTouchSlop float32 = 18.0

// DoubleTapTimeout is the maximum elapsed time between the first tap's
// pointer-up and the second tap's pointer-down for the pair to be
// considered a double tap.
const DoubleTapTimeout = 300 * time.Millisecond

// DoubleTapSlop is the maximum distance, in logical pixels, between the
// first and second tap's down position for the pair to still count as a
// double tap.
const DoubleTapSlop float32 = 100.0

// MinFlingVelocity is the minimum velocity, in logical pixels per second,
// for a drag's release velocity to be reported as a fling rather than a
// plain drag end.
const MinFlingVelocity float32 = 50.0

// MaxFlingVelocity caps the velocity reported to OnEnd callbacks, guarding
// against spurious samples producing unreasonable fling speeds.
const MaxFlingVelocity float32 = 8000.0

// velocitySampleWindow is the number of most-recent position samples used
// to estimate a drag's release velocity.
const velocitySampleWindow = 5
