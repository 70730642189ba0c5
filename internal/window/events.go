package window

// Events lists every handler slot the window exposes. The facade is
// table-driven: accessor behavior is identical across slots, so the
// names are data rather than per-member code.
var Events = []string{
	"abort",
	"afterprint",
	"beforeprint",
	"beforeunload",
	"blur",
	"change",
	"click",
	"close",
	"contextmenu",
	"dblclick",
	"error",
	"focus",
	"hashchange",
	"input",
	"invalid",
	"keydown",
	"keypress",
	"keyup",
	"load",
	"message",
	"mousedown",
	"mouseenter",
	"mouseleave",
	"mousemove",
	"mouseout",
	"mouseover",
	"mouseup",
	"offline",
	"online",
	"pagehide",
	"pageshow",
	"popstate",
	"reset",
	"resize",
	"scroll",
	"select",
	"storage",
	"submit",
	"unload",
	"wheel",
}

var eventIndex = func() map[string]struct{} {
	idx := make(map[string]struct{}, len(Events))
	for _, e := range Events {
		idx[e] = struct{}{}
	}
	return idx
}()
