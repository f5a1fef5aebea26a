// Package prompt collects answers from the user. The Source interface hides
// the terminal so the scaffolding workflow can be driven by a scripted
// sequence of answers in tests.
package prompt
