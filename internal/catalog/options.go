// Package catalog provides the embedded option and event metadata the
// semantic validator checks against, plus the project manifest and the
// extraction disk cache.
package catalog

import (
	"sort"

	"nvcfg/internal/model"
)

// OptionScope says where an option takes effect.
type OptionScope uint8

const (
	ScopeGlobal OptionScope = iota
	ScopeBuffer
	ScopeWindow
)

func (s OptionScope) String() string {
	switch s {
	case ScopeBuffer:
		return "buffer"
	case ScopeWindow:
		return "window"
	}
	return "global"
}

// Option is one known editor option.
type Option struct {
	Name       string
	Type       model.ValueKind
	Scope      OptionScope
	Doc        string
	Deprecated string // replacement name, empty when current
}

var builtinOptions = []Option{
	{Name: "autoindent", Type: model.ValueBool, Scope: ScopeBuffer, Doc: "copy indent from current line"},
	{Name: "background", Type: model.ValueString, Scope: ScopeGlobal, Doc: "\"dark\" or \"light\" color adjustment"},
	{Name: "clipboard", Type: model.ValueString, Scope: ScopeGlobal, Doc: "system clipboard integration"},
	{Name: "cmdheight", Type: model.ValueNumber, Scope: ScopeGlobal, Doc: "command-line height"},
	{Name: "colorcolumn", Type: model.ValueString, Scope: ScopeWindow, Doc: "highlighted screen columns"},
	{Name: "completeopt", Type: model.ValueString, Scope: ScopeGlobal, Doc: "insert-completion behavior"},
	{Name: "conceallevel", Type: model.ValueNumber, Scope: ScopeWindow, Doc: "concealed text display level"},
	{Name: "cursorline", Type: model.ValueBool, Scope: ScopeWindow, Doc: "highlight the cursor line"},
	{Name: "expandtab", Type: model.ValueBool, Scope: ScopeBuffer, Doc: "insert spaces for tabs"},
	{Name: "fileencoding", Type: model.ValueString, Scope: ScopeBuffer, Doc: "file content encoding"},
	{Name: "foldenable", Type: model.ValueBool, Scope: ScopeWindow, Doc: "enable folding"},
	{Name: "foldlevel", Type: model.ValueNumber, Scope: ScopeWindow, Doc: "initial fold level"},
	{Name: "foldmethod", Type: model.ValueString, Scope: ScopeWindow, Doc: "fold computation strategy"},
	{Name: "guifont", Type: model.ValueString, Scope: ScopeGlobal, Doc: "GUI font name"},
	{Name: "hidden", Type: model.ValueBool, Scope: ScopeGlobal, Doc: "keep modified buffers loaded"},
	{Name: "hlsearch", Type: model.ValueBool, Scope: ScopeGlobal, Doc: "highlight search matches"},
	{Name: "ignorecase", Type: model.ValueBool, Scope: ScopeGlobal, Doc: "case-insensitive search"},
	{Name: "incsearch", Type: model.ValueBool, Scope: ScopeGlobal, Doc: "incremental search"},
	{Name: "laststatus", Type: model.ValueNumber, Scope: ScopeGlobal, Doc: "when the statusline is shown"},
	{Name: "linebreak", Type: model.ValueBool, Scope: ScopeWindow, Doc: "wrap at word boundaries"},
	{Name: "list", Type: model.ValueBool, Scope: ScopeWindow, Doc: "show invisible characters"},
	{Name: "mouse", Type: model.ValueString, Scope: ScopeGlobal, Doc: "modes that enable the mouse"},
	{Name: "number", Type: model.ValueBool, Scope: ScopeWindow, Doc: "show line numbers"},
	{Name: "numberwidth", Type: model.ValueNumber, Scope: ScopeWindow, Doc: "minimal number column width"},
	{Name: "pumheight", Type: model.ValueNumber, Scope: ScopeGlobal, Doc: "maximum popup-menu height"},
	{Name: "relativenumber", Type: model.ValueBool, Scope: ScopeWindow, Doc: "show relative line numbers"},
	{Name: "scrolloff", Type: model.ValueNumber, Scope: ScopeGlobal, Doc: "lines kept above and below the cursor"},
	{Name: "shiftwidth", Type: model.ValueNumber, Scope: ScopeBuffer, Doc: "indent step size"},
	{Name: "showmode", Type: model.ValueBool, Scope: ScopeGlobal, Doc: "show mode message on the last line"},
	{Name: "sidescrolloff", Type: model.ValueNumber, Scope: ScopeGlobal, Doc: "columns kept left and right of the cursor"},
	{Name: "signcolumn", Type: model.ValueString, Scope: ScopeWindow, Doc: "when the sign column is drawn"},
	{Name: "smartcase", Type: model.ValueBool, Scope: ScopeGlobal, Doc: "case-sensitive when pattern has uppercase"},
	{Name: "smartindent", Type: model.ValueBool, Scope: ScopeBuffer, Doc: "syntax-aware autoindent"},
	{Name: "softtabstop", Type: model.ValueNumber, Scope: ScopeBuffer, Doc: "tab key indent size"},
	{Name: "splitbelow", Type: model.ValueBool, Scope: ScopeGlobal, Doc: "open horizontal splits below"},
	{Name: "splitright", Type: model.ValueBool, Scope: ScopeGlobal, Doc: "open vertical splits to the right"},
	{Name: "swapfile", Type: model.ValueBool, Scope: ScopeBuffer, Doc: "use a swapfile for the buffer"},
	{Name: "tabstop", Type: model.ValueNumber, Scope: ScopeBuffer, Doc: "display width of a tab"},
	{Name: "termguicolors", Type: model.ValueBool, Scope: ScopeGlobal, Doc: "24-bit colors in the terminal"},
	{Name: "timeoutlen", Type: model.ValueNumber, Scope: ScopeGlobal, Doc: "mapped sequence wait time in ms"},
	{Name: "undofile", Type: model.ValueBool, Scope: ScopeBuffer, Doc: "persistent undo history"},
	{Name: "updatetime", Type: model.ValueNumber, Scope: ScopeGlobal, Doc: "idle time before CursorHold in ms"},
	{Name: "wrap", Type: model.ValueBool, Scope: ScopeWindow, Doc: "wrap long lines"},
	{Name: "writebackup", Type: model.ValueBool, Scope: ScopeGlobal, Doc: "backup before overwriting a file"},
}

// Options is the queryable option catalog. Extra entries from a
// manifest extend the builtin table.
type Options struct {
	byName map[string]Option
}

func NewOptions(extra []Option) *Options {
	o := &Options{byName: make(map[string]Option, len(builtinOptions)+len(extra))}
	for _, opt := range builtinOptions {
		o.byName[opt.Name] = opt
	}
	for _, opt := range extra {
		o.byName[opt.Name] = opt
	}
	return o
}

func (o *Options) Lookup(name string) (Option, bool) {
	opt, ok := o.byName[name]
	return opt, ok
}

func (o *Options) Names() []string {
	names := make([]string, 0, len(o.byName))
	for name := range o.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
