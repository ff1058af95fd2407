// Package model defines the core data structures used throughout
// imgresize.
//
// # Menu Options
//
// MenuOptions maps the raw aliases a user may type to one canonical key:
//
//	opts := model.MenuOptions{
//	    {Key: "1a", Aliases: []string{"1", "1a", "a1"}},
//	    {Key: "1b", Aliases: []string{"1b", "b1"}},
//	}
//	key, ok := opts.Resolve("a1") // "1a", true
//
// # Resize Modes
//
// Mode is a tagged variant holding either a percentage or a fixed
// width and height:
//
//	mode := model.Percentage(50)
//	mode = model.Fixed(800, 600)
//
// # Output Paths
//
// OutputPath computes where a resized copy is written:
//
//	model.OutputPath("/in/photo.jpg", "/out", "re_", "png") // "/out/re_photo.png"
//
// # Errors
//
// Error carries a closed ErrorKind so callers can decide whether to
// re-prompt, skip a file or abort the run.
package model
