// fastview builds simple server-side views: snapshots from the game are
// converted to a view-model, multiplexed to one or more views, and each view
// emits element updates that a websocket client applies to the page.
package fastview

import (
	"html/template"
)

// EleUpdate names a page element and the operations to apply to it.
type EleUpdate struct {
	// EleId is the id attribute of the element.
	EleId string
	// Op keys are attribute names or 'textContent'. For example ('fill','red')
	// sets the fill attribute, and ('textContent','W') replaces the text.
	Ops []Op
}

// Op is a key and value, such as an html attribute and its new value.
type Op struct {
	Key   string
	Value string
}

// ViewComponent is a server side view: Parse adds its initial markup to a
// parent template, Updates notifies the element updates that keep it current.
type ViewComponent interface {
	Updates() <-chan []EleUpdate
	// Parse adds the component to the parent template, inheriting its func-map,
	// and returns the name of the defined template.
	Parse(*template.Template) (string, error)
}
