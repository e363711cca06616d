package dom

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Element is a handle on one element node of a Document. A nil *Element is
// what lookups return for missing ids, so callers guard with a nil check the
// same way page scripts guard against a null element.
type Element struct {
	doc  *Document
	node *html.Node
}

// Event is delivered to listeners.
type Event struct {
	Type   string
	Key    string // set for keyboard events
	Target *Element
}

// Listener handles an event.
type Listener func(Event)

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// ID returns the id attribute.
func (e *Element) ID() string {
	v, _ := attr(e.node, "id")
	return v
}

// Attribute returns the value of key and whether it is present.
func (e *Element) Attribute(key string) (string, bool) {
	return attr(e.node, key)
}

// SetAttribute sets key to val.
func (e *Element) SetAttribute(key, val string) {
	setAttr(e.node, key, val)
}

// RemoveAttribute deletes key.
func (e *Element) RemoveAttribute(key string) {
	removeAttr(e.node, key)
}

// HasClass reports whether class is in the class list.
func (e *Element) HasClass(class string) bool {
	return hasClass(e.node, class)
}

// AddClass appends class unless present.
func (e *Element) AddClass(class string) {
	if e.HasClass(class) {
		return
	}
	setAttr(e.node, "class", strings.Join(append(classes(e.node), class), " "))
}

// RemoveClass drops class from the class list.
func (e *Element) RemoveClass(class string) {
	cs := classes(e.node)
	kept := cs[:0]
	for _, c := range cs {
		if c != class {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		removeAttr(e.node, "class")
		return
	}
	setAttr(e.node, "class", strings.Join(kept, " "))
}

// Display returns the display value of the inline style, if any.
func (e *Element) Display() string {
	for _, decl := range styleDecls(e.node) {
		if decl[0] == "display" {
			return decl[1]
		}
	}
	return ""
}

// SetDisplay sets the display property of the inline style, keeping the
// other declarations.
func (e *Element) SetDisplay(value string) {
	decls := styleDecls(e.node)
	found := false
	for i := range decls {
		if decls[i][0] == "display" {
			decls[i][1] = value
			found = true
		}
	}
	if !found {
		decls = append(decls, [2]string{"display", value})
	}
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d[0]+": "+d[1])
	}
	setAttr(e.node, "style", strings.Join(parts, "; "))
}

func styleDecls(n *html.Node) [][2]string {
	v, _ := attr(n, "style")
	var out [][2]string
	for _, part := range strings.Split(v, ";") {
		name, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		out = append(out, [2]string{strings.ToLower(strings.TrimSpace(name)), strings.TrimSpace(val)})
	}
	return out
}

// Value returns the value attribute, which is where input state lives.
func (e *Element) Value() string {
	v, _ := attr(e.node, "value")
	return v
}

// SetValue sets the value attribute.
func (e *Element) SetValue(v string) {
	setAttr(e.node, "value", v)
}

// TextContent returns the concatenated text of all descendants.
func (e *Element) TextContent() string {
	return textContent(e.node)
}

// SetTextContent replaces all children with a single text node.
func (e *Element) SetTextContent(s string) {
	setText(e.node, s)
}

// InnerHTML renders the children of the element.
func (e *Element) InnerHTML() string {
	var buf bytes.Buffer
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return buf.String()
		}
	}
	return buf.String()
}

// SetInnerHTML parses markup in the context of the element and replaces its
// children with the result.
func (e *Element) SetInnerHTML(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.node)
	if err != nil {
		return err
	}
	removeChildren(e.node)
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// AppendChild attaches child as the last child of the element.
func (e *Element) AppendChild(child *Element) {
	if child.node.Parent != nil {
		child.node.Parent.RemoveChild(child.node)
	}
	e.node.AppendChild(child.node)
}

// Children returns the element children.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// QueryAllClass returns the descendants carrying class, in document order.
func (e *Element) QueryAllClass(class string) []*Element {
	return e.queryAll(func(n *html.Node) bool {
		return n.Type == html.ElementNode && hasClass(n, class)
	})
}

// QueryAllTag returns the descendants with the given tag name.
func (e *Element) QueryAllTag(tag string) []*Element {
	tag = strings.ToLower(tag)
	return e.queryAll(func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	})
}

func (e *Element) queryAll(match func(*html.Node) bool) []*Element {
	nodes := findAll(e.node, match, nil)
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, e.doc.wrap(n))
	}
	return out
}

// Parent returns the parent element, or nil at the top of the tree.
func (e *Element) Parent() *Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// Is reports whether both handles point at the same node.
func (e *Element) Is(other *Element) bool {
	return other != nil && e.node == other.node
}

// AddEventListener registers fn for events of type typ on this element.
func (e *Element) AddEventListener(typ string, fn Listener) {
	byType := e.doc.listeners[e.node]
	if byType == nil {
		byType = make(map[string][]Listener)
		e.doc.listeners[e.node] = byType
	}
	byType[typ] = append(byType[typ], fn)
}

// Dispatch calls the listeners registered for ev.Type on this element.
// It does not bubble. Use Window.Dispatch to run inside the page's
// execution context.
func (e *Element) Dispatch(ev Event) {
	ev.Target = e
	for _, fn := range e.doc.listeners[e.node][ev.Type] {
		fn(ev)
	}
}
