// Package royalty provides the shared types of a music royalty back-office
// toolkit. The toolkit is a set of independent, deterministic spreadsheet
// transformations used to prepare royalty statements:
//   - ECAD statement extraction: parsing the fixed-width text files sent by the
//     collecting society into a flat table (see package ecad).
//   - Royalty splits: classifying works as acquired/controlled from a registry
//     and splitting their income between payees (see package split).
//   - Withholding: deducting US withholding tax from distributor reports
//     (see package withholding).
//   - Discounts and concatenation utilities (see packages discount and concat).
//
// Every tool reads already loaded tables, returns an immutable result object
// and never keeps state between invocations. Amounts are exact decimals
// wrapped in [Money], shares are [Percent].
//
// This package serves as the foundation for the `rbo` command-line tool.
package royalty
