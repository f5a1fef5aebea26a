// Package postaction runs the optional steps offered after a template has
// been materialized: git initialization, dependency installation and
// opening an editor. Each step is confirmed separately and a failing step
// never prevents the next one from being offered.
package postaction
