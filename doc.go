// Package richedit implements an inline-object rich text editing core.
//
// # Overview
//
// The editing model is a single flat string in which code points from a
// reserved private-use range stand for inline objects (emoji images,
// mention chips, and similar non-text content). richedit expands that
// string into a sequence of text and inline-object spans, maintains the
// caret/selection state over it, and translates gestures and keyboard
// input into selection and edit operations. Inline objects behave as
// single characters for every navigation, selection, hit-testing, and
// editing operation, while the storage representation stays a plain
// string.
//
// # Quick Start
//
//	import "github.com/gogpu/richedit"
//
//	codec := richedit.NewCodec()
//	smile, _ := codec.Register("smile", mySmileImage)
//
//	ctrl := richedit.NewController(richedit.DirectionLTR)
//	ctrl.SetValue(richedit.EditingValue{
//		Text:      "hi ",
//		Selection: richedit.CollapsedSelection(3),
//	})
//	ctrl.InsertInline(smile) // text is now "hi ", caret after it
//
// # Architecture
//
// The package is a library, not a widget: painting, IME transport,
// clipboard access, and focus management belong to the host GUI
// framework and are consumed through narrow interfaces:
//   - Model: Codec, Span/BuildSpans, EditingValue, Controller
//   - Input: Editor, SelectionDelegate, Clipboard, InputConnection
//   - Presentation: CaretBlinker, FloatingCursor, Policy
//   - Geometry: the Geometry interface, implemented by richedit/layout
//
// The companion package richedit/layout lays out span sequences and
// answers hit-testing, caret, and selection-box queries, delegating text
// shaping to go-text/typesetting.
//
// # Offsets
//
// Offsets throughout are Unicode scalar (rune) offsets into the flat
// string, never byte offsets. All types assume a single-threaded,
// event-driven host.
package richedit

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
