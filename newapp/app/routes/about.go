package routes

import (
	"github.com/pulseframework/pulse"
	. "github.com/pulseframework/pulse/el"

	"newapp/app/components/demo"
)

func AboutPage(ctx pulse.Ctx) *pulse.VNode {
	return Div(Class("space-y-4"),
		H1(Class("text-3xl font-bold"), Text("About")),
		P(Class("text-gray-600 dark:text-gray-400"), Text("This is a Pulse app scaffolded by pulse create.")),
		demo.TaskBoard(ctx),
	)
}
