package ui

// View is a declarative view value.
type View interface {
	Render() string
}

// Text is a View rendering a fixed string.
type Text string

func (t Text) Render() string { return string(t) }

// ViewFunc adapts a function to View.
type ViewFunc func() string

func (f ViewFunc) Render() string { return f() }
