package common

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/launchdash/internal/ui/resources"
)

// DatastarScript is the client runtime that drives data-* attributes.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// Page wraps body in the HTML document shell.
func Page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!doctype html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>`+templ.EscapeString(title)+`</title>`+
			`<link rel="stylesheet" href="`+resources.StaticPath("app.css")+`">`+
			`<script type="module" src="`+DatastarScript+`"></script>`+
			`</head><body>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}
