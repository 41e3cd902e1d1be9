package browse

// Session command names.
const (
	CommandToggleLike     = "toggle_like"
	CommandToggleDownload = "toggle_download"
	CommandToggleShuffle  = "toggle_shuffle"
	CommandToggleRepeat   = "toggle_repeat"
	CommandStartRadio     = "start_radio"
	CommandBeginSearch    = "begin_search"
)

// Hooks are supplied by the host player. Nil hooks are skipped.
type Hooks struct {
	ToggleLike     func()
	ToggleDownload func()
	ToggleShuffle  func()
	ToggleRepeat   func()
	StartRadio     func()
	BeginSearch    func()
}

// Dispatcher maps command names to hooks.
type Dispatcher struct {
	hooks map[string]func()
}

// NewDispatcher binds hooks to their command names.
func NewDispatcher(h Hooks) Dispatcher {
	return Dispatcher{hooks: map[string]func(){
		CommandToggleLike:     h.ToggleLike,
		CommandToggleDownload: h.ToggleDownload,
		CommandToggleShuffle:  h.ToggleShuffle,
		CommandToggleRepeat:   h.ToggleRepeat,
		CommandStartRadio:     h.StartRadio,
		CommandBeginSearch:    h.BeginSearch,
	}}
}

// Dispatch runs the hook for name and reports whether one ran. Unknown names
// are a no-op.
func (d Dispatcher) Dispatch(name string) bool {
	fn := d.hooks[name]
	if fn == nil {
		return false
	}
	fn()
	return true
}

// Commands lists the known command names.
func Commands() []string {
	return []string{
		CommandToggleLike,
		CommandToggleDownload,
		CommandToggleShuffle,
		CommandToggleRepeat,
		CommandStartRadio,
		CommandBeginSearch,
	}
}
