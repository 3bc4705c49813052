// Package engine holds the calculator's domain model and the estimate flow.
//
// It resolves free-text addresses into candidates, validates panel input,
// asks PVGIS for a yield estimate and reduces the answer to a YieldReport.
// Rendering helpers write the report as a plain text summary with a monthly
// bar chart or as JSON.
package engine
