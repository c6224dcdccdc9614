// Package xbraceml converts a compact brace markup into tag markup.
//
// An element starts with a backslash, a name and optional attributes, and
// carries a body in braces:
//
//	\p{Hello \b{world}}        ->  <p>Hello <b>world</b></p>
//	\br{}                      ->  <br/>
//	\a href="x.html"{link}     ->  <a href="x.html">link</a>
//
// # Basic Usage
//
//	engine := xbraceml.MustNew()
//	out, err := engine.Convert(ctx, `\p{Hello}`)
//	// out: "<p>Hello</p>"
//
// # Special Elements
//
// Names starting with $ are reserved unless disabled with
// WithSpecialElements(false):
//
//	\${comment}       removed from the output
//	\$o{}  \$c{}      literal { and }
//	\$s{}             literal backslash
//	\$i{path}         the raw text of a file
//	\$i process{path} the converted text of a file
//
// The token \% toggles a verbatim region; both markers are removed.
//
// # Plugins
//
// A Plugin renders the element names it claims; its output replaces the
// whole element and is not scanned again. Plugins may run in-process:
//
//	upper := xbraceml.NewStaticPlugin(func(ctx context.Context, name, attrs, content string) (string, error) {
//	    return strings.ToUpper(content), nil
//	}, "shout")
//	engine := xbraceml.MustNew(xbraceml.WithPlugins(upper))
//
// or as external programs. A program answers "elements" on its command line
// with the names it claims, and renders one element per run from the request
// "name\r\n\r\nattributes\r\n\r\ncontent" on stdin:
//
//	plugins, err := xbraceml.DiscoverPlugins(ctx, "./plugins", logger)
//
// # Error Handling
//
// Malformed structure never fails a conversion: stray braces and unclosed
// elements stay in the output as literal text and are reported as warnings,
// through the logger and WithWarningHandler. Plugin failures and runaway
// include nesting return a *cuserr.CustomError carrying the element and its
// line and column.
//
// # Configuration
//
//	engine, _ := xbraceml.New(
//	    xbraceml.WithLongEmpty(true),
//	    xbraceml.WithMaxIncludeDepth(16),
//	    xbraceml.WithLogger(logger),
//	)
//
// The same options can be read from YAML with LoadConfigFile.
package xbraceml
