// Package resize runs a batch resize over a list of image files.
//
// The Engine decodes each file, applies the size guard, scales it
// according to a model.Mode and writes the result under the destination
// directory. Progress is reported through a callback of ProgressEvent
// values, the same way for the line-oriented CLI and the TUI.
//
//	engine := resize.NewEngine(settings, codec, logger, func(e resize.ProgressEvent) {
//	    fmt.Println(e.Message)
//	})
//	stats, err := engine.Run(ctx, files, destDir, model.KindPercentage, prompter)
//
// Images are processed one at a time. A file that cannot be decoded or
// written is reported and skipped; the run carries on with the next one.
package resize
