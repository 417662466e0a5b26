// Package templates renders the dashboard's HTML as templ components.
package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// page accumulates HTML and remembers the first write error.
type page struct {
	w   io.Writer
	err error
}

func (p *page) raw(s string) {
	if p.err == nil {
		_, p.err = io.WriteString(p.w, s)
	}
}

func (p *page) rawf(format string, args ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, format, args...)
	}
}

// text writes s HTML-escaped.
func (p *page) text(s string) {
	p.raw(templ.EscapeString(s))
}

// attr writes name="value" with value escaped.
func (p *page) attr(name, value string) {
	p.rawf(` %s="%s"`, name, templ.EscapeString(value))
}

func (p *page) render(ctx context.Context, c templ.Component) {
	if p.err == nil && c != nil {
		p.err = c.Render(ctx, p.w)
	}
}

// component adapts a page-writing function to templ.Component.
func component(fn func(ctx context.Context, p *page)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		fn(ctx, p)
		return p.err
	})
}

func itoa(n int) string { return strconv.Itoa(n) }
