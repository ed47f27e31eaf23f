package shuffle

// Hooks is the direct callback extension point, invoked on the ticking goroutine
// alongside the bus notifications
type Hooks interface {
	// OnChange receives every rendered frame
	OnChange(text string)
	// OnComplete fires once per run that reaches the end of its duration
	OnComplete()
}

// NopHooks implements Hooks with no-ops; embed it to override a single method
type NopHooks struct{}

func (NopHooks) OnChange(string) {}
func (NopHooks) OnComplete()     {}

// HookFuncs adapts plain functions to Hooks, nil fields are skipped
type HookFuncs struct {
	Change   func(text string)
	Complete func()
}

func (h HookFuncs) OnChange(text string) {
	if h.Change != nil {
		h.Change(text)
	}
}

func (h HookFuncs) OnComplete() {
	if h.Complete != nil {
		h.Complete()
	}
}

// MultiHooks fans out to several hook sets in order
type MultiHooks []Hooks

func (m MultiHooks) OnChange(text string) {
	for _, h := range m {
		h.OnChange(text)
	}
}

func (m MultiHooks) OnComplete() {
	for _, h := range m {
		h.OnComplete()
	}
}
