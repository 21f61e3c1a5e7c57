// Package report renders result sets for people and for other tools.
//
// Writers:
//   - TableWriter: bordered terminal table with a banner and a total line
//   - TextWriter: numbered plain-text blocks, the default result file
//   - MarkdownWriter: Markdown heading and table
//   - JSONWriter: title, columns, ordered records and total
//
// Truncation for display happens only inside the writers. The records of a
// ResultSet are never modified, so a file written after the terminal table
// still carries the full values.
package report
