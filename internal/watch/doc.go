// Package watch monitors a directory tree for new cue sheets.
//
// Watch mode keeps the splitter running against a library directory:
// when a .cue file is created or modified (for example a rip finishing),
// the watcher waits for writes to settle and then invokes the callback
// with the file path.
//
//	w, err := watch.New(root, func(path string) {
//	    // split path
//	})
//	err = w.Run(ctx)
package watch
