package domain

import (
	"fmt"
	"strings"
)

// Item is a single shopping-list entry.
// Items are value snapshots: the store owns the persisted row and callers
// must re-fetch or re-submit to observe or effect changes.
type Item struct {
	// ID uniquely identifies the item. Zero means "not yet stored".
	ID int64

	// Name is the label shown in the list. Never blank once stored.
	Name string

	// ImageURL is an opaque URI to locally selected image data.
	// Nil means the item has no image.
	ImageURL *string

	// Purchased marks the item as already bought.
	Purchased bool
}

// NewItem creates an unsaved, unpurchased item with no image.
func NewItem(name string) Item {
	return Item{Name: name}
}

// WithImage returns a copy of the item referencing the given image URI.
// An empty URI clears the image.
func (i Item) WithImage(uri string) Item {
	if uri == "" {
		i.ImageURL = nil
		return i
	}
	i.ImageURL = &uri
	return i
}

// HasImage reports whether the item references an image.
func (i Item) HasImage() bool {
	return i.ImageURL != nil
}

// Image returns the image URI, or an empty string when absent.
func (i Item) Image() string {
	if i.ImageURL == nil {
		return ""
	}
	return *i.ImageURL
}

// TogglePurchased returns a copy of the item with the purchased flag flipped.
func (i Item) TogglePurchased() Item {
	i.Purchased = !i.Purchased
	return i
}

// Clone returns a deep copy so no pointer is shared with the receiver.
func (i Item) Clone() Item {
	if i.ImageURL != nil {
		uri := *i.ImageURL
		i.ImageURL = &uri
	}
	return i
}

// Validate trims the name and rejects blank or whitespace-only names.
func (i *Item) Validate() error {
	i.Name = strings.TrimSpace(i.Name)
	if i.Name == "" {
		return fmt.Errorf("%w: item name must not be blank", ErrValidationRejected)
	}
	return nil
}

// String returns a short human-readable form, e.g. "#3 milk [x]".
func (i Item) String() string {
	mark := " "
	if i.Purchased {
		mark = "x"
	}
	return fmt.Sprintf("#%d %s [%s]", i.ID, i.Name, mark)
}
