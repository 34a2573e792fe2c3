// Package pipeline defines and executes gantry pipelines.
//
// A pipeline is an ordered list of named stages executed strictly
// sequentially: the first failing stage stops the run and the remaining
// stages are skipped. A single wall-clock timeout bounds the whole run.
// Terminal hooks (post blocks) execute unconditionally after any outcome,
// including a timeout, and tolerate their own sub-command failures by
// logging and continuing.
//
// Steps are either embedded shell snippets or builtins (environment setup,
// test tasks, stack orchestration, image build/tag, artifact archiving).
package pipeline
