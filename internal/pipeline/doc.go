// Package pipeline wires the four stages of an extraction run:
// fetch, extract, normalize and report.
//
// Each stage is a Step operating on a model.Run that the invocation owns.
// A Pipeline executes its steps in order and stops at the first failing one,
// so a fetch failure never reaches extraction and the run reports zero records.
//
// Two pipelines are provided:
//   - NewListingPipeline: HTTP (or a saved page) through the locator chain
//   - NewQueryPipeline: one catalog statement on a shared database Session
//
// BatchProcessor runs one query pipeline per statement, strictly one after
// another, and stops starting new statements once its context is cancelled.
package pipeline
