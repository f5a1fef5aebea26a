// Package provision drives one scaffolding run from start to finish:
// collect the project type and name, resolve the template, plan and
// prepare the destination, copy the template, then offer the post-provision
// actions. Every collaborator with side effects is injected so the whole
// run can be exercised with scripted answers and a fake command runner.
package provision
