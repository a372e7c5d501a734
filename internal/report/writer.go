package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/forestops/referral/internal/model"
	"github.com/forestops/referral/internal/overlay"
)

// DataSheet is the name of the results sheet.
const DataSheet = "FN_ref_report"

// NotesSheet is the name of the static caveats sheet.
const NotesSheet = "Notes"

// notesTitle and the notes paragraphs are the static usage caveats
// shipped with every report.
const notesTitle = "The referral overlay tool"

const notesIntro = "This tool assists planners with referrals to consultative-area holders.\n" +
	"The spatial overlays of input features (blocks or roads) and consultative areas are reported in the first sheet.\n"

const notesCaveats = "Please take note of the following when using the tool:\n" +
	"1- Layers are taken from the session file passed to the run command\n" +
	"2- The consultative-areas layer of the session is used as referral linework in this analysis\n" +
	"3- Block centroid points (mid-points for roads) are used to derive Elevation data\n" +
	"4- Features with an empty Name/ID field are shown as \"None\" in the report\n" +
	"5- Features outside the operating areas will have empty \"Op Area\" fields"

// styles caches the workbook style IDs used while writing.
type styles struct {
	header   int
	cell     int
	required int
	notReq   int
}

// Write renders the run result into a two-sheet workbook at path. The
// file is built in memory and saved once; any I/O failure surfaces as a
// fatal report-generation error with the underlying cause verbatim.
func Write(path string, result *overlay.RunResult, generated time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		return writeErr(err)
	}

	st, err := makeStyles(f)
	if err != nil {
		return writeErr(err)
	}

	if err := writeData(f, st, result, generated); err != nil {
		return writeErr(err)
	}
	if err := writeNotes(f); err != nil {
		return writeErr(err)
	}

	if err := f.SaveAs(path); err != nil {
		return writeErr(err)
	}
	return nil
}

func writeErr(err error) error {
	return model.WrapCLIError(model.ExitReportWrite, "generating the report", err)
}

func makeStyles(f *excelize.File) (styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	var st styles
	var err error

	st.header, err = f.NewStyle(&excelize.Style{
		Border: border,
		Font:   &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
	})
	if err != nil {
		return st, err
	}

	st.cell, err = f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: &excelize.Alignment{WrapText: true},
	})
	if err != nil {
		return st, err
	}

	marked := func(fill string) (int, error) {
		return f.NewStyle(&excelize.Style{
			Border: border,
			Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
			Alignment: &excelize.Alignment{
				Horizontal: "center",
				WrapText:   true,
			},
		})
	}
	if st.required, err = marked("F0FFF0"); err != nil {
		return st, err
	}
	if st.notReq, err = marked("FFE6E6"); err != nil {
		return st, err
	}
	return st, nil
}

// writeData fills the results sheet: a header row, one row per feature
// re-indexed from 1, green/red referral marking, widened columns, and
// the generation-date stamp below the table.
func writeData(f *excelize.File, st styles, result *overlay.RunResult, generated time.Time) error {
	table := result.Table
	columns := table.ColumnNames()

	set := func(col, row int, value any, style int) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(DataSheet, cell, value); err != nil {
			return err
		}
		return f.SetCellStyle(DataSheet, cell, cell, style)
	}

	// Header row: the index column has no title, matching the frame
	// export convention the report started life with.
	if err := set(1, 1, "#", st.header); err != nil {
		return err
	}
	for c, name := range columns {
		if err := set(c+2, 1, name, st.header); err != nil {
			return err
		}
	}

	areaCols := map[string]bool{}
	for _, a := range result.AreaColumns {
		areaCols[a] = true
	}

	for r := 0; r < table.Rows(); r++ {
		// Row index starts at 1 and is styled like a header.
		if err := set(1, r+2, r+1, st.header); err != nil {
			return err
		}
		for c, name := range columns {
			value := table.Column(name)[r]
			style := st.cell
			if areaCols[name] {
				if value == model.MarkRequired {
					style = st.required
				} else {
					style = st.notReq
				}
			}
			if err := set(c+2, r+2, value, style); err != nil {
				return err
			}
		}
	}

	if err := setWidths(f, len(columns)); err != nil {
		return err
	}

	zoom := 90.0
	if err := f.SetSheetView(DataSheet, -1, &excelize.ViewOptions{ZoomScale: &zoom}); err != nil {
		return err
	}

	stampCell, err := excelize.CoordinatesToCellName(2, table.Rows()+1+3)
	if err != nil {
		return err
	}
	stamp := fmt.Sprintf("Report generated on: %s", generated.Format("January 2, 2006"))
	return f.SetCellValue(DataSheet, stampCell, stamp)
}

// setWidths widens the area and measure columns so markings and long
// consultative-area names stay readable.
func setWidths(f *excelize.File, columnCount int) error {
	width := func(fromCol, toCol int, w float64) error {
		from, err := excelize.ColumnNumberToName(fromCol)
		if err != nil {
			return err
		}
		to, err := excelize.ColumnNumberToName(toCol)
		if err != nil {
			return err
		}
		return f.SetColWidth(DataSheet, from, to, w)
	}

	// Index and Type stay narrow; attribution and Name get room; the
	// measure/elevation pair slightly less; area columns uniform.
	if err := width(1, 2, 9); err != nil {
		return err
	}
	if err := width(3, 5, 14); err != nil {
		return err
	}
	if err := width(6, 7, 12); err != nil {
		return err
	}
	if columnCount > 6 {
		return width(8, columnCount+1, 14)
	}
	return nil
}

func writeNotes(f *excelize.File) error {
	if _, err := f.NewSheet(NotesSheet); err != nil {
		return err
	}
	if err := f.SetColWidth(NotesSheet, "A", "A", 110); err != nil {
		return err
	}

	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return err
	}
	text, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true}})
	if err != nil {
		return err
	}

	write := func(row int, value string, style int) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(NotesSheet, cell, value); err != nil {
			return err
		}
		return f.SetCellStyle(NotesSheet, cell, cell, style)
	}

	if err := write(1, notesTitle, title); err != nil {
		return err
	}
	if err := write(2, notesIntro, text); err != nil {
		return err
	}
	return write(3, notesCaveats, text)
}
