// Package player hosts a terminal page of simulated video elements.
//
// The page plays the role of a web page with one or more <video> elements:
// each Video implements seek.Media, advances with the host clock, and can
// be paused, seeked or left unloaded. The Host runs the event loop that
// reads tcell key events, forwards them to the seek controller and draws
// the page along with the seek OSD.
package player
