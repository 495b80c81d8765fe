package catalog

import "sort"

// lazyEvents are the load triggers the plugin manager understands,
// plus the editor autocommand events commonly used as triggers.
var lazyEvents = map[string]struct{}{
	"VeryLazy":        {},
	"BufAdd":          {},
	"BufDelete":       {},
	"BufEnter":        {},
	"BufLeave":        {},
	"BufNewFile":      {},
	"BufRead":         {},
	"BufReadPost":     {},
	"BufReadPre":      {},
	"BufWinEnter":     {},
	"BufWritePost":    {},
	"BufWritePre":     {},
	"CmdlineEnter":    {},
	"CmdlineLeave":    {},
	"ColorScheme":     {},
	"CursorHold":      {},
	"CursorHoldI":     {},
	"CursorMoved":     {},
	"FileType":        {},
	"FocusGained":     {},
	"FocusLost":       {},
	"InsertCharPre":   {},
	"InsertEnter":     {},
	"InsertLeave":     {},
	"LspAttach":       {},
	"TermOpen":        {},
	"TextChanged":     {},
	"TextYankPost":    {},
	"UIEnter":         {},
	"VimEnter":        {},
	"VimLeave":        {},
	"VimLeavePre":     {},
	"WinEnter":        {},
	"WinLeave":        {},
	"WinResized":      {},
	"SessionLoadPost": {},
}

// Events answers whether a load-event name is known. Manifest entries
// extend the builtin set.
type Events struct {
	known map[string]struct{}
}

func NewEvents(extra []string) *Events {
	e := &Events{known: make(map[string]struct{}, len(lazyEvents)+len(extra))}
	for name := range lazyEvents {
		e.known[name] = struct{}{}
	}
	for _, name := range extra {
		if name != "" {
			e.known[name] = struct{}{}
		}
	}
	return e
}

func (e *Events) Valid(name string) bool {
	// a "FileType python"-style trigger is validated by its event word
	if i := indexSpace(name); i > 0 {
		name = name[:i]
	}
	_, ok := e.known[name]
	return ok
}

func (e *Events) Names() []string {
	names := make([]string, 0, len(e.known))
	for name := range e.known {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func indexSpace(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			return i
		}
	}
	return -1
}
