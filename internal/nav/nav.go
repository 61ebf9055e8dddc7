package nav

// Routes the storefront screens transition between.
const (
	RouteHome           = "/"
	RouteCart           = "/cart"
	RoutePaymentSuccess = "/payment-success"
)

// Navigator performs a single-shot, fire-and-forget transition to a route,
// optionally carrying an opaque state payload for the next screen.
type Navigator interface {
	Navigate(route string, state any)
}

type NavigatorFunc func(route string, state any)

func (f NavigatorFunc) Navigate(route string, state any) {
	f(route, state)
}

type Transition struct {
	Route string
	State any
}

// Recorder captures transitions so the HTTP layer can map controller
// navigation onto responses. Tests use it as a fake.
type Recorder struct {
	Transitions []Transition
}

func (r *Recorder) Navigate(route string, state any) {
	r.Transitions = append(r.Transitions, Transition{Route: route, State: state})
}

// Last returns the most recent transition, if any.
func (r *Recorder) Last() (Transition, bool) {
	if len(r.Transitions) == 0 {
		return Transition{}, false
	}
	return r.Transitions[len(r.Transitions)-1], true
}
