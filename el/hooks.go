package el

import "github.com/pulseframework/pulse"

// Hook attaches a client hook to an element.
func Hook(name string, config any) Attr {
	return pulse.Hook(name, config)
}

// OnEvent attaches a hook event handler to an element.
func OnEvent(name string, handler func(pulse.HookEvent)) Attr {
	return pulse.OnEvent(name, handler)
}

