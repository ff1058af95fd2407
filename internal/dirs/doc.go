// Package dirs resolves the source and destination directories of a run.
//
// A source directory must already exist. A destination directory is
// created on demand, provided the first two components of its path
// exist (for example /home in /home/user/resized), so a typo near the
// root never creates a new tree in an unexpected place.
//
//	r := dirs.NewResolver(prompter, logger)
//	src, err := r.Resolve(dirs.Source)
//	dst, err := r.Resolve(dirs.Destination)
//
// Malformed input is rejected by ValidateRaw. Only those rejections are
// bounded by a retry limit; a missing directory simply asks again.
package dirs
