// Package template implements the output-name templates used to place
// split tracks, plus filename normalization for the values substituted
// into them.
//
// A template mixes literal text with variables in angle brackets:
//
//	tmpl := template.New("<year> - <album>/<no>. <title>.<ext>")
//
//	name := tmpl.Expand(func(buf *strings.Builder, name string) {
//	    switch name {
//	    case "title":
//	        buf.WriteString(trackTitle)
//	    // ...
//	    }
//	})
//
// The package knows nothing about which variable names are meaningful;
// callers enumerate Vars and reject the ones they do not support.
package template
