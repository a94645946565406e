package index

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const TimestampLayout = "2006-01-02 15:04:05"

const DefaultTitle = "Natural Earth GeoJSON Files"

// Render writes a minimal standalone HTML page listing the records in the given order.
// Apart from the records only the generation timestamp varies between two renders.
func Render(w io.Writer, title string, generated time.Time, records []Record) error {
	head := element(atom.Head)
	appendLines(head, withText(element(atom.Title), title))

	list := element(atom.Ul)
	list.AppendChild(newline())
	for _, record := range records {
		link := withText(element(atom.A, html.Attribute{Key: "href", Val: record.URL}), record.Filename)
		list.AppendChild(element(atom.Li))
		list.LastChild.AppendChild(link)
		list.AppendChild(newline())
	}

	body := element(atom.Body)
	appendLines(body,
		withText(element(atom.H1), title),
		withText(element(atom.P), "Generated: "+generated.Format(TimestampLayout)),
		withText(element(atom.P), fmt.Sprintf("Total files: %d", len(records))),
		element(atom.Hr),
		list,
	)

	root := element(atom.Html)
	appendLines(root, head, body)

	document := &html.Node{Type: html.DocumentNode}
	document.AppendChild(root)
	return html.Render(w, document)
}

func element(a atom.Atom, attributes ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attributes}
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

func newline() *html.Node {
	return &html.Node{Type: html.TextNode, Data: "\n"}
}

//places every child on its own line
func appendLines(parent *html.Node, children ...*html.Node) {
	parent.AppendChild(newline())
	for _, child := range children {
		parent.AppendChild(child)
		parent.AppendChild(newline())
	}
}
