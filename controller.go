package richedit

import (
	"fmt"
	"log/slog"
)

// Observer receives read-only editing value snapshots after every
// successful mutation.
type Observer func(EditingValue)

// Controller owns the canonical editing value. It is the sole mutator:
// every other component expresses changes as "replace the value", and the
// controller validates, normalizes, and publishes each replacement.
//
// Notification is synchronous, exactly once per successful mutation, and
// fires only after the value is fully consistent. An observer that
// mutates the controller during notification does not recurse: the
// mutation is queued and applied after the current notification pass.
//
// Controller is not safe for concurrent use; it assumes the
// single-threaded event loop of the host framework.
type Controller struct {
	value      EditingValue
	normalizer *Normalizer

	observers  map[int]Observer
	nextObsID  int
	notifying  bool
	pending    []EditingValue
}

// NewController creates a controller with an empty text and no selection.
// dir is the field's declared base text direction, used by the
// directionality normalizer.
func NewController(dir Direction) *Controller {
	return &Controller{
		value: EditingValue{
			Selection: InvalidSelection,
			Composing: EmptyRange,
		},
		normalizer: NewNormalizer(dir),
		observers:  make(map[int]Observer),
	}
}

// Value returns the current editing value snapshot.
func (c *Controller) Value() EditingValue {
	return c.value
}

// Text returns the current flat string.
func (c *Controller) Text() string {
	return c.value.Text
}

// Selection returns the current selection.
func (c *Controller) Selection() Selection {
	return c.value.Selection
}

// Subscribe registers an observer and returns a cancel function that
// unregisters it. Observers are invoked synchronously after each
// successful mutation, in unspecified order.
func (c *Controller) Subscribe(obs Observer) (cancel func()) {
	id := c.nextObsID
	c.nextObsID++
	c.observers[id] = obs
	return func() {
		delete(c.observers, id)
	}
}

// SetValue fully replaces the text, selection, and composing range.
//
// The incoming value is validated first: malformed offsets yield a
// *ValidationError and the previous valid value is retained. The
// directionality normalizer then runs as the last step before commit.
// Observers are notified iff the committed value differs from the
// previous one.
func (c *Controller) SetValue(v EditingValue) error {
	if err := v.Validate(); err != nil {
		Logger().Warn("richedit: rejected editing value",
			slog.String("error", err.Error()))
		return err
	}
	if c.notifying {
		c.pending = append(c.pending, v)
		return nil
	}
	c.commit(v)
	return nil
}

// SetSelection replaces only the selection.
func (c *Controller) SetSelection(sel Selection) error {
	v := c.value
	v.Selection = sel
	return c.SetValue(v)
}

// SetComposing replaces only the composing range.
func (c *Controller) SetComposing(r Range) error {
	v := c.value
	v.Composing = r
	return c.SetValue(v)
}

// ClearComposing marks the composition as absent without altering text or
// selection.
func (c *Controller) ClearComposing() {
	v := c.value
	v.Composing = EmptyRange
	// A value differing only in composing still validates; errors are
	// impossible here.
	_ = c.SetValue(v)
}

// InsertInline splices one reserved code point into the text at the
// selection's base offset and collapses the caret immediately after it.
//
// r must be a single code point within the reserved range; anything else
// is caller misuse and fails with an *ArgumentError.
//
// When the selection is non-collapsed the selected text is NOT removed:
// insertion still happens at min(base, length). Callers that want
// replace semantics must delete the selection first.
func (c *Controller) InsertInline(r rune) error {
	if !IsReserved(r) {
		return &ArgumentError{
			Op:     "Controller.InsertInline",
			Reason: fmt.Sprintf("code point %U is outside the reserved range [%U, %U]", r, ReservedFirst, ReservedLast),
		}
	}

	v := c.value
	n := v.RuneLen()
	at := 0
	if v.Selection.IsValid() {
		at = v.Selection.Base
	}
	if at > n {
		at = n
	}
	if at < 0 {
		at = 0
	}

	v.Text = spliceRune(v.Text, at, r)
	v.Selection = CollapsedSelection(at + 1)
	return c.SetValue(v)
}

// commit stores the value and notifies observers once. Mutations queued
// by observers during notification are applied afterwards, each with its
// own notification pass.
func (c *Controller) commit(v EditingValue) {
	adjusted := c.normalizer.Normalize(c.value, v)
	if adjusted == c.value {
		return
	}
	c.value = adjusted

	c.notifying = true
	for _, obs := range c.observers {
		obs(adjusted)
	}
	c.notifying = false

	for len(c.pending) > 0 {
		next := c.pending[0]
		c.pending = c.pending[1:]
		c.commit(next)
	}
}
