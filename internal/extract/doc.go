// Package extract locates candidate records in a fetched source.
//
// For HTML the Extractor runs a chain of Locator strategies in strict priority
// order and stops at the first one that finds anything:
//  1. primary: the li[data-aut-id="itemBox"] test-id attribute
//  2. secondary: the div._1DNjI class fingerprint
//  3. heuristic: any div whose text contains the currency marker
//
// Exhausting a strategy is logged as a structure mismatch and is not an error.
// For relational sources Rows is an identity mapping.
package extract
