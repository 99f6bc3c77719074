// Package dataprocessing turns raw CFEM-CRM uploads into the canonical
// in-memory dataset. It consolidates reading, cleaning and derivation into
// one package covering the data lifecycle from upload bytes to typed
// records.
//
// # Architecture
//
// The package has three stages:
//
// 1. Readers: decode ';'-delimited CSV (BOM-tolerant, ISO8859-1 fallback)
// or .xlsx workbooks into an untyped RawTable with normalized headers.
//
// 2. Normalizer: drops ignored columns, types numeric fields through the
// Brazilian-locale parser, canonicalizes the tax ID and strategy tier,
// and carries unknown columns through as extras.
//
// 3. Derive: adds the two computed fields, the annualized contract value
// and the mapping status.
//
// # Usage
//
//	pipeline := dataprocessing.NewPipeline(logger)
//	ds, err := pipeline.Process(ctx, upload, "cfem.csv")
//
// # Error Handling
//
// Field-level failures never abort a load: unparseable numerics become
// NaN and malformed tax IDs are kept as-is with a validity flag. Missing
// required columns abort the load with a *SchemaError naming every absent
// column; nothing partial is produced.
package dataprocessing
