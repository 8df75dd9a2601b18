package clientdist

import _ "embed"

// PulseMinJS is the production thin client JavaScript bundle.
//
// It is served by the framework at "/_pulse/client.js".
//go:embed pulse.min.js
var PulseMinJS []byte

