// Package report writes the final spreadsheet: one styled data sheet
// with the overlay results and one static notes sheet with usage
// caveats.
//
// The workbook is assembled fully in memory with
// github.com/xuri/excelize/v2 and saved in a single write, so a failed
// save never leaves a partially valid report behind.
package report
