// SPDX-License-Identifier: EPL-2.0

// Package sampler is an instrument that plays audio files decoded by the
// formats packages.
//
// The "open" route streams the file and reopens it to rewind. The "import"
// route decodes the whole file up front, which allows playing it in
// reverse:
//
//	catalog := instrument.NewCatalog(sampler.Factory())
//	kick, err := catalog.Initialize("sampler", "import", "kick.wav")
//	err = kick.Transform("play")
//
// Frames keep the file's encoding. A sampler starts paused and yields empty
// frames until it is played.
package sampler
