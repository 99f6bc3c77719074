// Package analytics computes filtered views, KPI summaries and strategic
// analyses over the canonical CFEM-CRM dataset. Every function here is
// pure: inputs are never mutated, missing numeric values (NaN) are
// excluded from sums and means rather than coerced to zero, and undefined
// ratios come back as NaN instead of errors.
package analytics
