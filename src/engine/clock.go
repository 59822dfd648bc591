package engine

import "time"

// Now is the engine clock. Tests swap it to pin advance-booking and
// days-before-checkin math to a fixed instant.
var Now = time.Now
